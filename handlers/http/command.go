package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type CommandHandler struct {
	commands *usecases.CommandUseCase
}

func NewCommandHandler(commands *usecases.CommandUseCase) *CommandHandler {
	return &CommandHandler{commands: commands}
}

func commandBody(cmd *entities.Command) gin.H {
	return gin.H{"data": cmd, "_links": commandLinks(cmd)}
}

// CreateCommand handles POST /api/v1/commands
func (h *CommandHandler) CreateCommand(c *gin.Context) {
	var in usecases.CommandCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	cmd, err := h.commands.Create(in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, commandBody(cmd))
}

// ListCommands handles GET /api/v1/commands?device_id=
func (h *CommandHandler) ListCommands(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		fail(c, errs.BadRequest("please provide a 'device_id' to filter commands"))
		return
	}
	skip, limit := paging(c)
	cmds, err := h.commands.ListByDevice(deviceID, auth.CurrentUserID(c), skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(cmds))
	for i := range cmds {
		out[i] = commandBody(&cmds[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetCommand handles GET /api/v1/commands/:id
func (h *CommandHandler) GetCommand(c *gin.Context) {
	cmd, err := h.commands.GetAuthorized(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, commandBody(cmd))
}

// UpdateCommand handles PUT /api/v1/commands/:id
func (h *CommandHandler) UpdateCommand(c *gin.Context) {
	var in usecases.CommandUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	cmd, err := h.commands.Update(c.Param("id"), in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, commandBody(cmd))
}

// DeleteCommand handles DELETE /api/v1/commands/:id
func (h *CommandHandler) DeleteCommand(c *gin.Context) {
	if err := h.commands.Delete(c.Param("id"), auth.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GatewayPullCommands handles
// POST /api/v1/commands/gateway-pull-commands?device_serial_number=
// Unauthenticated: the device identifies itself by serial number alone.
// Returned pending commands are marked sent in the same operation.
func (h *CommandHandler) GatewayPullCommands(c *gin.Context) {
	serial := c.Query("device_serial_number")
	if serial == "" {
		fail(c, errs.BadRequest("device_serial_number is required"))
		return
	}
	limit := queryInt(c, "limit", 10)
	cmds, err := h.commands.GatewayPull(serial, limit)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(cmds))
	for i := range cmds {
		out[i] = commandBody(&cmds[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GatewayUpdateCommand handles
// PUT /api/v1/commands/gateway-update-command/:id
// Unauthenticated status reporting from the device side.
func (h *CommandHandler) GatewayUpdateCommand(c *gin.Context) {
	var in usecases.CommandUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	cmd, err := h.commands.GatewayUpdate(c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, commandBody(cmd))
}
