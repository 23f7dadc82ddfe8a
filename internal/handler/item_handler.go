package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/service-sharing/internal/application"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/response"
)

// createCommentRequest holds the text of a new comment.
type createCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListForOwner)
		items.GET("/search", h.Search)
		items.GET("/:itemId", h.GetItem)
		items.PATCH("/:itemId", h.UpdateItem)
		items.POST("/:itemId/comment", h.CreateComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	var req application.CreateItemRequest
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

// UpdateItem handles PATCH /items/:itemId.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}
	var upd itemDomain.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, itemID, upd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem handles GET /items/:itemId.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), itemID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForOwner handles GET /items.
func (h *ItemHandler) ListForOwner(c *gin.Context) {
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

	result, err := h.service.ListForOwner(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Search handles GET /items/search?text=.
func (h *ItemHandler) Search(c *gin.Context) {
	from, size, ok := pagination(c)
	if !ok {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateComment handles POST /items/:itemId/comment.
func (h *ItemHandler) CreateComment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateComment(c.Request.Context(), userID, itemID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
