package usecases

import (
	"testing"

	"iot-manager/errs"
)

func TestDeviceCreate(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)

	device, err := e.deviceUC.Create(DeviceCreate{
		Name:         "rooftop gateway",
		SerialNumber: "SN-001",
		DeviceType:   "gateway",
		ProjectID:    project.ID,
	}, owner.ID, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if device.Status != "offline" {
		t.Fatalf("expected default status offline, got %q", device.Status)
	}
}

func TestDeviceCreateForeignProject(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)

	in := DeviceCreate{Name: "gw", SerialNumber: "SN-001", DeviceType: "gateway", ProjectID: project.ID}
	if _, err := e.deviceUC.Create(in, intruder.ID, nil); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// a missing project is masked as forbidden, not revealed as not found
	in.ProjectID = "no-such-project"
	if _, err := e.deviceUC.Create(in, owner.ID, nil); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden for missing project, got %v", err)
	}
}

func TestDeviceDuplicateSerial(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	e.device(t, project.ID, "SN-001")

	_, err := e.deviceUC.Create(DeviceCreate{
		Name:         "second",
		SerialNumber: "SN-001",
		DeviceType:   "gateway",
		ProjectID:    project.ID,
	}, owner.ID, nil)
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	devices, err := e.deviceUC.ListByProject(project.ID, owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("store changed by rejected create: %d devices", len(devices))
	}
}

func TestDeviceUpdateSerial(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	first := e.device(t, project.ID, "SN-001")
	second := e.device(t, project.ID, "SN-002")

	// taking another device's serial is a conflict
	_, err := e.deviceUC.Update(second.ID, DeviceUpdate{SerialNumber: ptr("SN-001")}, owner.ID)
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// re-submitting the device's own serial is fine
	if _, err := e.deviceUC.Update(first.ID, DeviceUpdate{SerialNumber: ptr("SN-001"), Status: ptr("online")}, owner.ID); err != nil {
		t.Fatalf("update with own serial: %v", err)
	}
	reloaded, err := e.deviceUC.Get(first.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "online" {
		t.Fatalf("status not updated: %q", reloaded.Status)
	}
}

func TestDeviceListByProjectForbidden(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)
	e.device(t, project.ID, "SN-001")

	if _, err := e.deviceUC.ListByProject(project.ID, intruder.ID, 0, 0); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if _, err := e.deviceUC.ListByProject("no-such-project", owner.ID, 0, 0); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden for missing project, got %v", err)
	}
}

func TestDeviceChainAuthorization(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	if _, err := e.deviceUC.GetAuthorized(device.ID, owner.ID); err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if _, err := e.deviceUC.GetAuthorized(device.ID, intruder.ID); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
