package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// sharerHeader carries the caller's user id on every authenticated route.
const sharerHeader = "X-Sharer-User-Id"

// callerID extracts the caller's user id from the request header.
func callerID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(sharerHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pagination extracts the from/size query parameters with the API defaults.
// Range validation happens in the services; only unparsable values are
// rejected here.
func pagination(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		return 0, 0, false
	}
	return from, size, true
}
