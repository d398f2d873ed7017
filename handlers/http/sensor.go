package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type SensorHandler struct {
	sensors *usecases.SensorUseCase
}

func NewSensorHandler(sensors *usecases.SensorUseCase) *SensorHandler {
	return &SensorHandler{sensors: sensors}
}

func sensorBody(s *entities.Sensor) gin.H {
	return gin.H{"data": s, "_links": sensorLinks(s)}
}

// CreateSensor handles POST /api/v1/sensors
func (h *SensorHandler) CreateSensor(c *gin.Context) {
	var in usecases.SensorCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	sensor, err := h.sensors.Create(in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sensorBody(sensor))
}

// ListSensors handles GET /api/v1/sensors?device_id=
func (h *SensorHandler) ListSensors(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		fail(c, errs.BadRequest("please provide a 'device_id' to filter sensors"))
		return
	}
	skip, limit := paging(c)
	sensors, err := h.sensors.ListByDevice(deviceID, auth.CurrentUserID(c), skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(sensors))
	for i := range sensors {
		out[i] = sensorBody(&sensors[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetSensor handles GET /api/v1/sensors/:id
func (h *SensorHandler) GetSensor(c *gin.Context) {
	sensor, err := h.sensors.GetAuthorized(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensorBody(sensor))
}

// UpdateSensor handles PUT /api/v1/sensors/:id
func (h *SensorHandler) UpdateSensor(c *gin.Context) {
	var in usecases.SensorUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	sensor, err := h.sensors.Update(c.Param("id"), in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensorBody(sensor))
}

// DeleteSensor handles DELETE /api/v1/sensors/:id
func (h *SensorHandler) DeleteSensor(c *gin.Context) {
	if err := h.sensors.Delete(c.Param("id"), auth.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
