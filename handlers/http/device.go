package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	devices *usecases.DeviceUseCase
	sensors *usecases.SensorUseCase
}

func NewDeviceHandler(devices *usecases.DeviceUseCase, sensors *usecases.SensorUseCase) *DeviceHandler {
	return &DeviceHandler{devices: devices, sensors: sensors}
}

func deviceBody(d *entities.Device) gin.H {
	return gin.H{"data": d, "_links": deviceLinks(d)}
}

// CreateDevice handles POST /api/v1/devices?tag_ids=...
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var in usecases.DeviceCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	device, err := h.devices.Create(in, auth.CurrentUserID(c), c.QueryArray("tag_ids"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, deviceBody(device))
}

// ListDevices handles GET /api/v1/devices. Exactly one of project_id or
// query must scope the listing.
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	skip, limit := paging(c)
	var (
		devices []entities.Device
		err     error
	)
	switch {
	case c.Query("project_id") != "":
		devices, err = h.devices.ListByProject(c.Query("project_id"), auth.CurrentUserID(c), skip, limit)
	case c.Query("query") != "":
		devices, err = h.devices.Search(c.Query("query"), skip, limit)
	default:
		fail(c, errs.BadRequest("please provide a 'project_id' or 'query' parameter"))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(devices))
	for i := range devices {
		out[i] = deviceBody(&devices[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetDevice handles GET /api/v1/devices/:id
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	device, err := h.devices.GetAuthorized(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deviceBody(device))
}

// UpdateDevice handles PUT /api/v1/devices/:id
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	var in usecases.DeviceUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	device, err := h.devices.Update(c.Param("id"), in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deviceBody(device))
}

// DeleteDevice handles DELETE /api/v1/devices/:id
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	if err := h.devices.Delete(c.Param("id"), auth.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddDeviceTags handles POST /api/v1/devices/:id/tags
func (h *DeviceHandler) AddDeviceTags(c *gin.Context) {
	var req tagIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	device, err := h.devices.AddTags(c.Param("id"), req.TagIDs, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deviceBody(device))
}

// RemoveDeviceTags handles DELETE /api/v1/devices/:id/tags
func (h *DeviceHandler) RemoveDeviceTags(c *gin.Context) {
	var req tagIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	device, err := h.devices.RemoveTags(c.Param("id"), req.TagIDs, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deviceBody(device))
}

// GetDeviceTags handles GET /api/v1/devices/:id/tags
func (h *DeviceHandler) GetDeviceTags(c *gin.Context) {
	tags, err := h.devices.GetTags(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags, "count": len(tags)})
}

// GetRecentSensorData handles GET /api/v1/devices/:id/recent-sensor-data?limit=N
func (h *DeviceHandler) GetRecentSensorData(c *gin.Context) {
	limit := queryInt(c, "limit", 1)
	if limit < 1 {
		fail(c, errs.BadRequest("limit must be at least 1"))
		return
	}
	recent, err := h.sensors.RecentForDevice(c.Param("id"), auth.CurrentUserID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recent, "count": len(recent)})
}

// GetSensorAverages handles
// GET /api/v1/devices/:id/sensor-data/averages/:period
func (h *DeviceHandler) GetSensorAverages(c *gin.Context) {
	period := usecases.AveragePeriod(c.Param("period"))
	averages, err := h.sensors.AveragesForDevice(c.Param("id"), auth.CurrentUserID(c), period)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": averages, "count": len(averages)})
}
