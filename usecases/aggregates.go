package usecases

import (
	"sort"
	"time"

	"iot-manager/entities"
	"iot-manager/errs"
)

// AveragePeriod selects the bucket size for average queries.
type AveragePeriod string

const (
	PeriodDaily   AveragePeriod = "daily"
	PeriodWeekly  AveragePeriod = "weekly"
	PeriodMonthly AveragePeriod = "monthly"
)

// SensorRecentData carries a sensor's identity with its most recent
// readings, newest first.
type SensorRecentData struct {
	SensorID          string                `json:"sensor_id"`
	SensorName        string                `json:"sensor_name"`
	UnitOfMeasurement string                `json:"unit_of_measurement"`
	RecentData        []entities.SensorData `json:"recent_data"`
}

// SensorAverage is one (sensor, bucket) row of an average query. Bucket
// is YYYY-MM-DD for daily and weekly (week start date) and YYYY-MM for
// monthly.
type SensorAverage struct {
	SensorID          string  `json:"sensor_id"`
	SensorName        string  `json:"sensor_name"`
	UnitOfMeasurement string  `json:"unit_of_measurement"`
	Bucket            string  `json:"bucket"`
	AverageValue      float64 `json:"average_value"`
}

// RecentForDevice returns up to limit most recent readings per sensor of
// the device. Sensors without readings contribute no entries.
func (uc *SensorUseCase) RecentForDevice(deviceID, userID string, limit int) ([]SensorRecentData, error) {
	if err := uc.owner.requireDevice(deviceID, userID, "device not found or not authorized to access its sensor data"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1
	}
	sensors, err := uc.sensors.GetByDeviceID(deviceID, 0, 0)
	if err != nil {
		return nil, err
	}

	out := make([]SensorRecentData, 0, len(sensors))
	for _, sensor := range sensors {
		recent, err := uc.data.GetRecentBySensorID(sensor.ID, limit)
		if err != nil {
			return nil, err
		}
		if len(recent) == 0 {
			continue
		}
		out = append(out, SensorRecentData{
			SensorID:          sensor.ID,
			SensorName:        sensor.Name,
			UnitOfMeasurement: sensor.UnitOfMeasurement,
			RecentData:        recent,
		})
	}
	return out, nil
}

// AveragesForDevice computes the arithmetic mean of every sensor's
// readings grouped by time bucket. Rows are grouped by sensor, buckets
// ascending within each sensor.
func (uc *SensorUseCase) AveragesForDevice(deviceID, userID string, period AveragePeriod) ([]SensorAverage, error) {
	bucketOf, err := bucketFunc(period)
	if err != nil {
		return nil, err
	}
	if err := uc.owner.requireDevice(deviceID, userID, "device not found or not authorized to access its sensor data"); err != nil {
		return nil, err
	}

	sensors, err := uc.sensors.GetByDeviceID(deviceID, 0, 0)
	if err != nil {
		return nil, err
	}
	readings, err := uc.data.GetByDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum   float64
		count int
	}
	perSensor := make(map[string]map[string]*acc)
	for _, r := range readings {
		buckets := perSensor[r.SensorID]
		if buckets == nil {
			buckets = make(map[string]*acc)
			perSensor[r.SensorID] = buckets
		}
		key := bucketOf(r.Timestamp)
		a := buckets[key]
		if a == nil {
			a = &acc{}
			buckets[key] = a
		}
		a.sum += r.Value
		a.count++
	}

	sort.Slice(sensors, func(i, j int) bool { return sensors[i].ID < sensors[j].ID })

	var out []SensorAverage
	for _, sensor := range sensors {
		buckets := perSensor[sensor.ID]
		if len(buckets) == 0 {
			continue
		}
		keys := make([]string, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		// Bucket labels sort chronologically as strings.
		sort.Strings(keys)
		for _, k := range keys {
			a := buckets[k]
			out = append(out, SensorAverage{
				SensorID:          sensor.ID,
				SensorName:        sensor.Name,
				UnitOfMeasurement: sensor.UnitOfMeasurement,
				Bucket:            k,
				AverageValue:      a.sum / float64(a.count),
			})
		}
	}
	return out, nil
}

func bucketFunc(period AveragePeriod) (func(time.Time) string, error) {
	switch period {
	case PeriodDaily:
		return func(ts time.Time) string {
			return ts.UTC().Format("2006-01-02")
		}, nil
	case PeriodWeekly:
		return func(ts time.Time) string {
			return isoWeekStart(ts.UTC()).Format("2006-01-02")
		}, nil
	case PeriodMonthly:
		return func(ts time.Time) string {
			return ts.UTC().Format("2006-01")
		}, nil
	default:
		return nil, errs.BadRequest("period must be daily, weekly or monthly")
	}
}

// isoWeekStart truncates ts to the Monday beginning its ISO week.
func isoWeekStart(ts time.Time) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
