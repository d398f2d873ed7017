package httpHandler

import (
	"net/http"

	"iot-manager/entities"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tags *usecases.TagUseCase
}

func NewTagHandler(tags *usecases.TagUseCase) *TagHandler {
	return &TagHandler{tags: tags}
}

func tagBody(t *entities.Tag) gin.H {
	return gin.H{"data": t, "_links": tagLinks(t)}
}

// CreateTag handles POST /api/v1/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var in usecases.TagCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	tag, err := h.tags.Create(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, tagBody(tag))
}

// ListTags handles GET /api/v1/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	skip, limit := paging(c)
	var (
		tags []entities.Tag
		err  error
	)
	if query := c.Query("query"); query != "" {
		tags, err = h.tags.Search(query, skip, limit)
	} else {
		tags, err = h.tags.List(skip, limit)
	}
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(tags))
	for i := range tags {
		out[i] = tagBody(&tags[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetTag handles GET /api/v1/tags/:id
func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.tags.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tagBody(tag))
}

// UpdateTag handles PUT /api/v1/tags/:id
func (h *TagHandler) UpdateTag(c *gin.Context) {
	var in usecases.TagUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	tag, err := h.tags.Update(c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tagBody(tag))
}

// DeleteTag handles DELETE /api/v1/tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tags.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
