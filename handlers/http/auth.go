package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *usecases.UserUseCase
	jwt   *auth.JWTManager
}

func NewAuthHandler(users *usecases.UserUseCase, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in usecases.UserRegister
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	user, err := h.users.Register(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": user})
}

// Token handles POST /api/v1/auth/token. Credentials arrive
// form-encoded, OAuth2 password-flow style.
func (h *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		badRequest(c, "username and password are required", nil)
		return
	}
	user, err := h.users.Authenticate(username, password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		fail(c, err)
		return
	}
	token, err := h.jwt.CreateToken(user.ID, user.Username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
