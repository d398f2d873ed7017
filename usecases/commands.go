package usecases

import (
	"errors"
	"time"

	"iot-manager/entities"
	"iot-manager/repositories"

	"gorm.io/gorm"
)

type CommandUseCase struct {
	commands repositories.CommandRepository
	devices  repositories.DeviceRepository
	owner    ownerResolver
}

func NewCommandUseCase(commands repositories.CommandRepository, devices repositories.DeviceRepository, projects repositories.ProjectRepository) *CommandUseCase {
	return &CommandUseCase{
		commands: commands,
		devices:  devices,
		owner:    ownerResolver{projects: projects, devices: devices},
	}
}

type CommandCreate struct {
	DeviceID    string `json:"device_id" binding:"required"`
	CommandType string `json:"command_type" binding:"required"`
	Parameters  string `json:"parameters"`
}

// CommandUpdate is a partial patch. Status is stored verbatim; the
// declared lifecycle is not enforced.
type CommandUpdate struct {
	Status          *string    `json:"status"`
	ResponseMessage *string    `json:"response_message"`
	CompletedAt     *time.Time `json:"completed_at"`
}

func (uc *CommandUseCase) Create(in CommandCreate, userID string) (*entities.Command, error) {
	if err := uc.owner.requireDevice(in.DeviceID, userID, "device not found or not authorized to issue commands to it"); err != nil {
		return nil, err
	}
	cmd := &entities.Command{
		DeviceID:    in.DeviceID,
		CommandType: in.CommandType,
		Parameters:  in.Parameters,
	}
	if err := uc.commands.Create(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (uc *CommandUseCase) Get(id string) (*entities.Command, error) {
	cmd, err := uc.commands.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "command not found")
	}
	return cmd, nil
}

func (uc *CommandUseCase) GetAuthorized(id, userID string) (*entities.Command, error) {
	cmd, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := uc.owner.requireDevice(cmd.DeviceID, userID, "not authorized to access this command"); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (uc *CommandUseCase) ListByDevice(deviceID, userID string, skip, limit int) ([]entities.Command, error) {
	if err := uc.owner.requireDevice(deviceID, userID, "device not found or not authorized to access its commands"); err != nil {
		return nil, err
	}
	return uc.commands.GetByDeviceID(deviceID, skip, limit)
}

func (uc *CommandUseCase) Update(id string, in CommandUpdate, userID string) (*entities.Command, error) {
	cmd, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	return uc.applyUpdate(cmd, in)
}

func (uc *CommandUseCase) Delete(id, userID string) error {
	if _, err := uc.GetAuthorized(id, userID); err != nil {
		return err
	}
	return uc.commands.Delete(id)
}

// GatewayPull hands pending commands to the device with the given serial
// number and marks them sent in the same operation. An unknown serial
// yields an empty list, not an error; the endpoint carries no caller
// identity.
func (uc *CommandUseCase) GatewayPull(serial string, limit int) ([]entities.Command, error) {
	device, err := uc.devices.GetBySerialNumber(serial)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []entities.Command{}, nil
		}
		return nil, err
	}
	return uc.commands.PullPending(device.ID, limit)
}

// GatewayUpdate lets a device report command progress. The command is
// identified by id alone; there is no device credential to check.
func (uc *CommandUseCase) GatewayUpdate(id string, in CommandUpdate) (*entities.Command, error) {
	cmd, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	return uc.applyUpdate(cmd, in)
}

func (uc *CommandUseCase) applyUpdate(cmd *entities.Command, in CommandUpdate) (*entities.Command, error) {
	if in.Status != nil {
		cmd.Status = *in.Status
	}
	if in.ResponseMessage != nil {
		cmd.ResponseMessage = *in.ResponseMessage
	}
	if in.CompletedAt != nil {
		t := in.CompletedAt.UTC()
		cmd.CompletedAt = &t
	}
	if err := uc.commands.Update(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}
