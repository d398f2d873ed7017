package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/errs"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *usecases.UserUseCase
}

func NewUserHandler(users *usecases.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, limit := paging(c)
	users, err := h.users.List(skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
}

// GetUser handles GET /api/v1/users/:id (self only)
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if id != auth.CurrentUserID(c) {
		fail(c, errs.Forbidden("not authorized to access this user's data"))
		return
	}
	user, err := h.users.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateUser handles PUT /api/v1/users/:id (self only)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if id != auth.CurrentUserID(c) {
		fail(c, errs.Forbidden("not authorized to update this user"))
		return
	}
	var in usecases.UserUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	user, err := h.users.Update(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// DeleteUser handles DELETE /api/v1/users/:id (self only)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id != auth.CurrentUserID(c) {
		fail(c, errs.Forbidden("not authorized to delete this user"))
		return
	}
	if err := h.users.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
