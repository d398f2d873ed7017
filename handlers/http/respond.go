package httpHandler

import (
	"net/http"
	"strconv"
	"time"

	"iot-manager/errs"

	"github.com/gin-gonic/gin"
)

// fail maps a service error to its status code and a JSON error body.
func fail(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// queryInt reads an integer query parameter, falling back to def.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryTime reads an optional RFC3339 timestamp query parameter.
func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// paging reads the skip/limit pair shared by every list endpoint.
func paging(c *gin.Context) (skip, limit int) {
	return queryInt(c, "skip", 0), queryInt(c, "limit", 100)
}

// tagIDsRequest is the body of the tag attach/detach sub-resource
// endpoints.
type tagIDsRequest struct {
	TagIDs []string `json:"tag_ids" binding:"required"`
}
