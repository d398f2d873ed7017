package usecases

import (
	"errors"
	"fmt"
	"time"

	"iot-manager/entities"
	"iot-manager/errs"

	"gorm.io/gorm"
)

// IngestReading is one item of a bulk ingestion payload. Sensors are
// addressed by name within the device; unknown names create the sensor.
type IngestReading struct {
	SensorName        string     `json:"sensor_name_or_id" binding:"required"`
	Value             float64    `json:"value"`
	UnitOfMeasurement string     `json:"unit_of_measurement"`
	Timestamp         *time.Time `json:"timestamp"`
}

type IngestPayload struct {
	DeviceSerialNumber string          `json:"device_serial_number" binding:"required"`
	Readings           []IngestReading `json:"readings" binding:"required"`
}

// IngestReport enumerates both outcomes of a batch so callers can tell
// full success, partial success and total failure apart.
type IngestReport struct {
	IngestedCount int                   `json:"ingested_count"`
	Ingested      []entities.SensorData `json:"ingested_data"`
	Errors        []string              `json:"errors,omitempty"`
}

// Partial reports whether at least one reading failed.
func (r *IngestReport) Partial() bool { return len(r.Errors) > 0 }

// Ingest persists a batch of readings for the device with the given
// serial number. The device must exist; each reading then succeeds or
// fails on its own, and the report carries both partitions. The device's
// project owner acts as the identity for sensor auto-creation, since the
// endpoint itself is unauthenticated.
func (uc *SensorDataUseCase) Ingest(payload IngestPayload) (*IngestReport, error) {
	device, err := uc.devices.GetBySerialNumber(payload.DeviceSerialNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("device with serial number %q not found", payload.DeviceSerialNumber)
		}
		return nil, err
	}

	report := &IngestReport{Ingested: []entities.SensorData{}}
	for _, reading := range payload.Readings {
		data, err := uc.ingestOne(device, reading)
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("reading %q: %s", reading.SensorName, err.Error()))
			continue
		}
		report.Ingested = append(report.Ingested, *data)
		report.IngestedCount++
	}
	return report, nil
}

// ingestOne resolves or creates the named sensor and stores the reading.
func (uc *SensorDataUseCase) ingestOne(device *entities.Device, reading IngestReading) (*entities.SensorData, error) {
	sensor, err := uc.sensors.GetByNameAndDevice(reading.SensorName, device.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		sensor = &entities.Sensor{
			Name:              reading.SensorName,
			UnitOfMeasurement: reading.UnitOfMeasurement,
			DeviceID:          device.ID,
		}
		if err := uc.sensors.Create(sensor); err != nil {
			return nil, err
		}
	}

	if err := validateReading(sensor, reading.Value); err != nil {
		return nil, err
	}
	data := &entities.SensorData{
		Value:    reading.Value,
		SensorID: sensor.ID,
	}
	if reading.Timestamp != nil {
		data.Timestamp = reading.Timestamp.UTC()
	}
	if err := uc.data.Create(data); err != nil {
		return nil, err
	}
	return data, nil
}
