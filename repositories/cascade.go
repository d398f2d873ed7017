package repositories

import (
	"iot-manager/entities"

	"gorm.io/gorm"
)

// Explicit, ordered cascade deletes. Children go before parents so no
// orphan rows survive a partial failure; callers run these inside a
// transaction.

func deleteSensorTree(tx *gorm.DB, sensorID string) error {
	if err := tx.Where("sensor_id = ?", sensorID).Delete(&entities.SensorData{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", sensorID).Delete(&entities.Sensor{}).Error
}

func deleteDeviceTree(tx *gorm.DB, deviceID string) error {
	var sensorIDs []string
	if err := tx.Model(&entities.Sensor{}).Where("device_id = ?", deviceID).Pluck("id", &sensorIDs).Error; err != nil {
		return err
	}
	if len(sensorIDs) > 0 {
		if err := tx.Where("sensor_id IN ?", sensorIDs).Delete(&entities.SensorData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", sensorIDs).Delete(&entities.Sensor{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("device_id = ?", deviceID).Delete(&entities.Command{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM device_tags WHERE device_id = ?", deviceID).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", deviceID).Delete(&entities.Device{}).Error
}

func deleteProjectTree(tx *gorm.DB, projectID string) error {
	var deviceIDs []string
	if err := tx.Model(&entities.Device{}).Where("project_id = ?", projectID).Pluck("id", &deviceIDs).Error; err != nil {
		return err
	}
	for _, deviceID := range deviceIDs {
		if err := deleteDeviceTree(tx, deviceID); err != nil {
			return err
		}
	}
	if err := tx.Exec("DELETE FROM project_tags WHERE project_id = ?", projectID).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", projectID).Delete(&entities.Project{}).Error
}
