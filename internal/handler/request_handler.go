package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/service-sharing/internal/application"
	"github.com/shareloop/service-sharing/internal/response"
)

// RequestHandler handles HTTP requests for item requests.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item request routes on the given router group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:requestId", h.GetRequest)
	}
}

// CreateRequest handles POST /requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	var req application.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOthers handles GET /requests/all.
func (h *RequestHandler) ListOthers(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	from, size, ok := pagination(c)
	if !ok {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := h.service.ListOthers(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRequest handles GET /requests/:requestId.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
