package server

import (
	"iot-manager/auth"
	"iot-manager/confs"
	"iot-manager/db"
	httpHandler "iot-manager/handlers/http"
	"iot-manager/repositories"
	"iot-manager/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app        *gin.Engine
	db         db.Database
	cfg        *confs.Config
	configured bool
}

func NewServer(database db.Database, cfg *confs.Config) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		cfg: cfg,
	}
}

func (s *Server) Start() error {
	s.setup()
	return s.app.Run(s.cfg.ListenAddr)
}

// App exposes the configured engine for tests.
func (s *Server) App() *gin.Engine {
	s.setup()
	return s.app
}

func (s *Server) setup() {
	if s.configured {
		return
	}
	s.configured = true

	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	s.app.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the IoT Manager API",
		})
	})

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	projectRepo := repositories.NewProjectPgRepository(s.db)
	deviceRepo := repositories.NewDevicePgRepository(s.db)
	sensorRepo := repositories.NewSensorPgRepository(s.db)
	sensorDataRepo := repositories.NewSensorDataPgRepository(s.db)
	tagRepo := repositories.NewTagPgRepository(s.db)
	commandRepo := repositories.NewCommandPgRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo)
	projectUseCase := usecases.NewProjectUseCase(projectRepo, tagRepo)
	deviceUseCase := usecases.NewDeviceUseCase(deviceRepo, projectRepo, tagRepo)
	sensorUseCase := usecases.NewSensorUseCase(sensorRepo, sensorDataRepo, deviceRepo, projectRepo)
	sensorDataUseCase := usecases.NewSensorDataUseCase(sensorDataRepo, sensorRepo, deviceRepo, projectRepo)
	tagUseCase := usecases.NewTagUseCase(tagRepo)
	commandUseCase := usecases.NewCommandUseCase(commandRepo, deviceRepo, projectRepo)

	jwtManager := auth.NewJWTManager(s.cfg.JWTSecret, s.cfg.TokenTTL)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(userUseCase, jwtManager)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	projectHandler := httpHandler.NewProjectHandler(projectUseCase)
	deviceHandler := httpHandler.NewDeviceHandler(deviceUseCase, sensorUseCase)
	sensorHandler := httpHandler.NewSensorHandler(sensorUseCase)
	sensorDataHandler := httpHandler.NewSensorDataHandler(sensorDataUseCase)
	tagHandler := httpHandler.NewTagHandler(tagUseCase)
	commandHandler := httpHandler.NewCommandHandler(commandUseCase)

	api := s.app.Group("/api/v1")

	// Public routes: account creation, token exchange, and the two
	// device-facing surfaces (batch ingestion and command exchange).
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/token", authHandler.Token)
	api.POST("/sensor-data/ingest", sensorDataHandler.IngestSensorData)
	api.POST("/commands/gateway-pull-commands", commandHandler.GatewayPullCommands)
	api.PUT("/commands/gateway-update-command/:id", commandHandler.GatewayUpdateCommand)

	authorized := api.Group("")
	authorized.Use(auth.Middleware(jwtManager, userRepo))
	{
		// User routes
		users := authorized.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Project routes
		projects := authorized.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/tags", projectHandler.AddProjectTags)
			projects.DELETE("/:id/tags", projectHandler.RemoveProjectTags)
			projects.GET("/:id/tags", projectHandler.GetProjectTags)
		}

		// Device routes
		devices := authorized.Group("/devices")
		{
			devices.POST("", deviceHandler.CreateDevice)
			devices.GET("", deviceHandler.ListDevices)
			devices.GET("/:id", deviceHandler.GetDevice)
			devices.PUT("/:id", deviceHandler.UpdateDevice)
			devices.DELETE("/:id", deviceHandler.DeleteDevice)
			devices.POST("/:id/tags", deviceHandler.AddDeviceTags)
			devices.DELETE("/:id/tags", deviceHandler.RemoveDeviceTags)
			devices.GET("/:id/tags", deviceHandler.GetDeviceTags)
			devices.GET("/:id/recent-sensor-data", deviceHandler.GetRecentSensorData)
			devices.GET("/:id/sensor-data/averages/:period", deviceHandler.GetSensorAverages)
		}

		// Sensor routes
		sensors := authorized.Group("/sensors")
		{
			sensors.POST("", sensorHandler.CreateSensor)
			sensors.GET("", sensorHandler.ListSensors)
			sensors.GET("/:id", sensorHandler.GetSensor)
			sensors.PUT("/:id", sensorHandler.UpdateSensor)
			sensors.DELETE("/:id", sensorHandler.DeleteSensor)
		}

		// Sensor data routes
		sensorData := authorized.Group("/sensor-data")
		{
			sensorData.POST("", sensorDataHandler.CreateSensorData)
			sensorData.GET("", sensorDataHandler.ListSensorData)
			sensorData.GET("/:id", sensorDataHandler.GetSensorData)
			sensorData.DELETE("/:id", sensorDataHandler.DeleteSensorData)
		}

		// Tag routes
		tags := authorized.Group("/tags")
		{
			tags.POST("", tagHandler.CreateTag)
			tags.GET("", tagHandler.ListTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		// Command routes
		commands := authorized.Group("/commands")
		{
			commands.POST("", commandHandler.CreateCommand)
			commands.GET("", commandHandler.ListCommands)
			commands.GET("/:id", commandHandler.GetCommand)
			commands.PUT("/:id", commandHandler.UpdateCommand)
			commands.DELETE("/:id", commandHandler.DeleteCommand)
		}
	}
}
