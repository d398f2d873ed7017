package usecases

import (
	"testing"
	"time"

	"iot-manager/errs"
)

func TestDailyAverages(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")
	sensor := e.sensor(t, device.ID, "temperature")

	day1 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	e.reading(t, sensor.ID, 10, day1.Add(8*time.Hour))
	e.reading(t, sensor.ID, 30, day1.Add(16*time.Hour))
	e.reading(t, sensor.ID, 30, day2.Add(12*time.Hour))

	averages, err := e.sensorUC.AveragesForDevice(device.ID, owner.ID, PeriodDaily)
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if len(averages) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(averages))
	}
	if averages[0].Bucket != "2026-03-10" || averages[0].AverageValue != 20 {
		t.Fatalf("bucket 1 wrong: %+v", averages[0])
	}
	if averages[1].Bucket != "2026-03-11" || averages[1].AverageValue != 30 {
		t.Fatalf("bucket 2 wrong: %+v", averages[1])
	}
}

func TestWeeklyAveragesBucketOnMonday(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")
	sensor := e.sensor(t, device.ID, "temperature")

	// 2026-03-11 is a Wednesday; 2026-03-15 a Sunday. Both belong to the
	// week starting Monday 2026-03-09.
	e.reading(t, sensor.ID, 10, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC))
	e.reading(t, sensor.ID, 20, time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC))
	// Monday of the next week
	e.reading(t, sensor.ID, 40, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))

	averages, err := e.sensorUC.AveragesForDevice(device.ID, owner.ID, PeriodWeekly)
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if len(averages) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %d", len(averages))
	}
	if averages[0].Bucket != "2026-03-09" || averages[0].AverageValue != 15 {
		t.Fatalf("week 1 wrong: %+v", averages[0])
	}
	if averages[1].Bucket != "2026-03-16" || averages[1].AverageValue != 40 {
		t.Fatalf("week 2 wrong: %+v", averages[1])
	}
}

func TestMonthlyAverages(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")
	sensor := e.sensor(t, device.ID, "temperature")

	e.reading(t, sensor.ID, 10, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	e.reading(t, sensor.ID, 20, time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC))
	e.reading(t, sensor.ID, 50, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	averages, err := e.sensorUC.AveragesForDevice(device.ID, owner.ID, PeriodMonthly)
	if err != nil {
		t.Fatalf("averages: %v", err)
	}
	if len(averages) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(averages))
	}
	if averages[0].Bucket != "2026-01" || averages[0].AverageValue != 15 {
		t.Fatalf("january wrong: %+v", averages[0])
	}
	if averages[1].Bucket != "2026-02" || averages[1].AverageValue != 50 {
		t.Fatalf("february wrong: %+v", averages[1])
	}
}

func TestAveragesBadPeriod(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	_, err := e.sensorUC.AveragesForDevice(device.ID, owner.ID, AveragePeriod("hourly"))
	if errs.KindOf(err) != errs.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestAveragesForbiddenForNonOwner(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	_, err := e.sensorUC.AveragesForDevice(device.ID, intruder.ID, PeriodDaily)
	if errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRecentForDevice(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")
	temperature := e.sensor(t, device.ID, "temperature")
	humidity := e.sensor(t, device.ID, "humidity")
	e.sensor(t, device.ID, "pressure") // never reports

	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e.reading(t, temperature.ID, float64(i), base.Add(time.Duration(i)*time.Minute))
	}
	e.reading(t, humidity.ID, 55, base)

	recent, err := e.sensorUC.RecentForDevice(device.ID, owner.ID, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	// the sensor with no readings contributes nothing
	if len(recent) != 2 {
		t.Fatalf("expected 2 sensors with data, got %d", len(recent))
	}

	for _, entry := range recent {
		if entry.SensorID != temperature.ID {
			continue
		}
		if len(entry.RecentData) != 2 {
			t.Fatalf("expected 2 readings for temperature, got %d", len(entry.RecentData))
		}
		if entry.RecentData[0].Value != 4 || entry.RecentData[1].Value != 3 {
			t.Fatalf("readings not newest first: %v, %v",
				entry.RecentData[0].Value, entry.RecentData[1].Value)
		}
	}
}

func TestIsoWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "2026-03-09"},  // Monday maps to itself
		{time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), "2026-03-09"}, // Sunday maps back
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2025-12-29"},  // year boundary
	}
	for _, tt := range tests {
		if got := isoWeekStart(tt.in).Format("2006-01-02"); got != tt.want {
			t.Errorf("isoWeekStart(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
