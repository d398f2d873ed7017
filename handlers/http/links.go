package httpHandler

import (
	"iot-manager/entities"

	"github.com/gin-gonic/gin"
)

// Navigational links embedded in single-resource responses, mirroring
// the API's resource graph.

func link(href, method string) gin.H {
	return gin.H{"href": href, "method": method}
}

func projectLinks(p *entities.Project) gin.H {
	base := "/api/v1/projects/" + p.ID
	return gin.H{
		"self":     link(base, "GET"),
		"update":   link(base, "PUT"),
		"delete":   link(base, "DELETE"),
		"devices":  link("/api/v1/devices?project_id="+p.ID, "GET"),
		"tags":     link(base+"/tags", "GET"),
		"add_tags": link(base+"/tags", "POST"),
	}
}

func deviceLinks(d *entities.Device) gin.H {
	base := "/api/v1/devices/" + d.ID
	return gin.H{
		"self":        link(base, "GET"),
		"update":      link(base, "PUT"),
		"delete":      link(base, "DELETE"),
		"project":     link("/api/v1/projects/"+d.ProjectID, "GET"),
		"sensors":     link("/api/v1/sensors?device_id="+d.ID, "GET"),
		"tags":        link(base+"/tags", "GET"),
		"add_tags":    link(base+"/tags", "POST"),
		"recent_data": link(base+"/recent-sensor-data", "GET"),
	}
}

func sensorLinks(s *entities.Sensor) gin.H {
	base := "/api/v1/sensors/" + s.ID
	return gin.H{
		"self":   link(base, "GET"),
		"update": link(base, "PUT"),
		"delete": link(base, "DELETE"),
		"device": link("/api/v1/devices/"+s.DeviceID, "GET"),
		"data":   link("/api/v1/sensor-data?sensor_id="+s.ID, "GET"),
	}
}

func sensorDataLinks(d *entities.SensorData) gin.H {
	return gin.H{
		"self":   link("/api/v1/sensor-data/"+d.ID, "GET"),
		"sensor": link("/api/v1/sensors/"+d.SensorID, "GET"),
	}
}

func tagLinks(t *entities.Tag) gin.H {
	base := "/api/v1/tags/" + t.ID
	return gin.H{
		"self":   link(base, "GET"),
		"update": link(base, "PUT"),
		"delete": link(base, "DELETE"),
	}
}

func commandLinks(cmd *entities.Command) gin.H {
	return gin.H{
		"self":   link("/api/v1/commands/"+cmd.ID, "GET"),
		"device": link("/api/v1/devices/"+cmd.DeviceID, "GET"),
	}
}
