package httpHandler

import (
	"net/http"

	"iot-manager/auth"
	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/usecases"

	"github.com/gin-gonic/gin"
)

type SensorDataHandler struct {
	data *usecases.SensorDataUseCase
}

func NewSensorDataHandler(data *usecases.SensorDataUseCase) *SensorDataHandler {
	return &SensorDataHandler{data: data}
}

func sensorDataBody(d *entities.SensorData) gin.H {
	return gin.H{"data": d, "_links": sensorDataLinks(d)}
}

// CreateSensorData handles POST /api/v1/sensor-data
func (h *SensorDataHandler) CreateSensorData(c *gin.Context) {
	var in usecases.SensorDataCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	data, err := h.data.Create(in, auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sensorDataBody(data))
}

// ListSensorData handles GET /api/v1/sensor-data?sensor_id=&start_time=&end_time=
func (h *SensorDataHandler) ListSensorData(c *gin.Context) {
	sensorID := c.Query("sensor_id")
	if sensorID == "" {
		fail(c, errs.BadRequest("please provide a 'sensor_id' to filter sensor data"))
		return
	}
	start, err := queryTime(c, "start_time")
	if err != nil {
		fail(c, errs.BadRequest("start_time must be RFC3339"))
		return
	}
	end, err := queryTime(c, "end_time")
	if err != nil {
		fail(c, errs.BadRequest("end_time must be RFC3339"))
		return
	}
	skip, limit := paging(c)
	data, err := h.data.ListBySensor(sensorID, auth.CurrentUserID(c), start, end, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, len(data))
	for i := range data {
		out[i] = sensorDataBody(&data[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetSensorData handles GET /api/v1/sensor-data/:id
func (h *SensorDataHandler) GetSensorData(c *gin.Context) {
	data, err := h.data.GetAuthorized(c.Param("id"), auth.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sensorDataBody(data))
}

// DeleteSensorData handles DELETE /api/v1/sensor-data/:id
func (h *SensorDataHandler) DeleteSensorData(c *gin.Context) {
	if err := h.data.Delete(c.Param("id"), auth.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// IngestSensorData handles POST /api/v1/sensor-data/ingest. The endpoint
// is unauthenticated; the device is identified by serial number. A batch
// with any per-reading failures yields 207 with both partitions.
func (h *SensorDataHandler) IngestSensorData(c *gin.Context) {
	var payload usecases.IngestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	report, err := h.data.Ingest(payload)
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	body := gin.H{
		"message":        "ingestion completed",
		"ingested_count": report.IngestedCount,
		"ingested_data":  report.Ingested,
	}
	if report.Partial() {
		status = http.StatusMultiStatus
		body["warning"] = "some readings encountered errors"
		body["errors"] = report.Errors
	}
	c.JSON(status, body)
}
