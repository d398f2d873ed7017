package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/entities"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects *usecases.ProjectUseCase
}

func NewProjectHandler(projects *usecases.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func projectBody(p *entities.Project) gin.H {
	return gin.H{"data": p, "_links": projectLinks(p)}
}

// CreateProject handles POST /api/v1/projects?tag_ids=...
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var in usecases.ProjectCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	project, err := h.projects.Create(in, auth.CurrentUserID(c), c.QueryArray("tag_ids"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, projectBody(project))
}

// ListProjects handles GET /api/v1/projects. Without a search query the
// caller's own projects are listed.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	skip, limit := paging(c)
	var (
		projects []entities.Project
		err      error
	)
	if query := c.Query("query"); query != "" {
		projects, err = h.projects.Search(query, skip, limit)
	} else {
		projects, err = h.projects.ListByUser(auth.CurrentUserID(c), skip, limit)
	}
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(projects))
	for i := range projects {
		out[i] = projectBody(&projects[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetProject handles GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projects.GetAuthorized(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projectBody(project))
}

// UpdateProject handles PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var in usecases.ProjectUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	project, err := h.projects.Update(c.Param("id"), in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projectBody(project))
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Param("id"), auth.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddProjectTags handles POST /api/v1/projects/:id/tags
func (h *ProjectHandler) AddProjectTags(c *gin.Context) {
	var req tagIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	project, err := h.projects.AddTags(c.Param("id"), req.TagIDs, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projectBody(project))
}

// RemoveProjectTags handles DELETE /api/v1/projects/:id/tags
func (h *ProjectHandler) RemoveProjectTags(c *gin.Context) {
	var req tagIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	project, err := h.projects.RemoveTags(c.Param("id"), req.TagIDs, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projectBody(project))
}

// GetProjectTags handles GET /api/v1/projects/:id/tags
func (h *ProjectHandler) GetProjectTags(c *gin.Context) {
	tags, err := h.projects.GetTags(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags, "count": len(tags)})
}
