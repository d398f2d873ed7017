package usecases

import (
	"testing"
	"time"

	"iot-manager/entities"
	"iot-manager/errs"
)

func TestCommandCreate(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	cmd, err := e.commandUC.Create(CommandCreate{
		DeviceID:    device.ID,
		CommandType: "reboot",
	}, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cmd.Status != entities.CommandStatusPending {
		t.Fatalf("expected pending status, got %q", cmd.Status)
	}
	if cmd.IssuedAt.IsZero() {
		t.Fatalf("issued_at not set")
	}

	_, err = e.commandUC.Create(CommandCreate{DeviceID: device.ID, CommandType: "reboot"}, intruder.ID)
	if errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
}

func TestCommandListForbidden(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	if _, err := e.commandUC.ListByDevice(device.ID, intruder.ID, 0, 0); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGatewayPull(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	first := &entities.Command{DeviceID: device.ID, CommandType: "reboot",
		IssuedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
	second := &entities.Command{DeviceID: device.ID, CommandType: "set-interval",
		IssuedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	for _, cmd := range []*entities.Command{first, second} {
		if err := e.commands.Create(cmd); err != nil {
			t.Fatalf("create command: %v", err)
		}
	}

	pulled, err := e.commandUC.GatewayPull("SN-001", 0)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(pulled) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(pulled))
	}
	if pulled[0].ID != first.ID {
		t.Fatalf("commands not oldest first")
	}
	for _, cmd := range pulled {
		if cmd.Status != entities.CommandStatusSent {
			t.Fatalf("pulled command %s not marked sent: %q", cmd.ID, cmd.Status)
		}
	}

	// already handed off, a second pull is empty
	pulled, err = e.commandUC.GatewayPull("SN-001", 0)
	if err != nil {
		t.Fatalf("second pull: %v", err)
	}
	if len(pulled) != 0 {
		t.Fatalf("expected empty second pull, got %d", len(pulled))
	}
}

func TestGatewayPullLimit(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		cmd := &entities.Command{DeviceID: device.ID, CommandType: "ping",
			IssuedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := e.commands.Create(cmd); err != nil {
			t.Fatalf("create command: %v", err)
		}
	}

	pulled, err := e.commandUC.GatewayPull("SN-001", 2)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(pulled) != 2 {
		t.Fatalf("expected 2 commands with limit 2, got %d", len(pulled))
	}

	remaining, err := e.commandUC.GatewayPull("SN-001", 10)
	if err != nil {
		t.Fatalf("pull remainder: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining command, got %d", len(remaining))
	}
}

func TestGatewayPullUnknownSerial(t *testing.T) {
	e := newEnv(t)

	pulled, err := e.commandUC.GatewayPull("NOPE", 0)
	if err != nil {
		t.Fatalf("unknown serial should not error: %v", err)
	}
	if len(pulled) != 0 {
		t.Fatalf("expected empty list, got %d", len(pulled))
	}
}

func TestGatewayUpdate(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	cmd := &entities.Command{DeviceID: device.ID, CommandType: "reboot"}
	if err := e.commands.Create(cmd); err != nil {
		t.Fatalf("create command: %v", err)
	}

	done := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	updated, err := e.commandUC.GatewayUpdate(cmd.ID, CommandUpdate{
		Status:          ptr(entities.CommandStatusCompleted),
		ResponseMessage: ptr("rebooted in 4s"),
		CompletedAt:     &done,
	})
	if err != nil {
		t.Fatalf("gateway update: %v", err)
	}
	if updated.Status != entities.CommandStatusCompleted {
		t.Fatalf("status not applied: %q", updated.Status)
	}
	if updated.ResponseMessage != "rebooted in 4s" {
		t.Fatalf("response message not applied: %q", updated.ResponseMessage)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(done) {
		t.Fatalf("completed_at not applied: %v", updated.CompletedAt)
	}

	_, err = e.commandUC.GatewayUpdate("no-such-command", CommandUpdate{Status: ptr("failed")})
	if errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCommandUpdateForbidden(t *testing.T) {
	e := newEnv(t)
	owner := e.user(t, "owner")
	intruder := e.user(t, "intruder")
	project := e.project(t, owner.ID)
	device := e.device(t, project.ID, "SN-001")

	cmd, err := e.commandUC.Create(CommandCreate{DeviceID: device.ID, CommandType: "reboot"}, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = e.commandUC.Update(cmd.ID, CommandUpdate{Status: ptr("failed")}, intruder.ID)
	if errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
