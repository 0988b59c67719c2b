package routes

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"schoolgrid_go/controllers"
	"schoolgrid_go/middleware"
	"schoolgrid_go/services"
	"schoolgrid_go/services/websocket"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, wsHub *websocket.Hub, grid *services.GridService, autosave *services.AutosaveService, archiver *services.ArchiveService) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	teacherController := &controllers.TeacherController{}
	roomController := &controllers.RoomController{}
	subjectController := &controllers.SubjectController{}
	classController := &controllers.ClassController{}
	importController := &controllers.RegistryImportController{}
	logController := controllers.NewLogController()
	settingsController := controllers.NewSettingsController()
	scheduleController := controllers.NewScheduleController(grid, autosave, wsHub)
	configController := controllers.NewScheduleConfigController(grid)
	archiveController := controllers.NewArchiveController(archiver)
	healthController := controllers.NewHealthController(services.NewHealthService("", ""))
	wsController := controllers.NewWebSocketController(wsHub)

	// API group
	api := app.Group("/api")

	// Health endpoint (no authentication required)
	api.Get("/health", healthController.GetHealthStatus)

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware(), middleware.LogActivityMiddleware())

	// Profile routes (authenticated users)
	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// User registration (admin only)
	protected.Post("/users", middleware.RequireAdmin(), authController.Register)

	// Settings routes
	settings := protected.Group("/settings")
	settings.Get("/", settingsController.GetMySettings)
	settings.Put("/", settingsController.UpdateMySettings)
	settings.Get("/users/:id", middleware.RequireAdmin(), settingsController.GetUserSettings)
	settings.Put("/users/:id", middleware.RequireAdmin(), settingsController.UpdateUserSettings)

	// Teacher registry routes
	teachers := protected.Group("/teachers")
	teachers.Get("/", teacherController.GetTeachers)
	teachers.Get("/:id", teacherController.GetTeacher)
	teachers.Post("/", middleware.RequireRegistrarOrAbove(), teacherController.CreateTeacher)
	teachers.Put("/:id", middleware.RequireRegistrarOrAbove(), teacherController.UpdateTeacher)
	teachers.Delete("/:id", middleware.RequireAdmin(), teacherController.DeleteTeacher)

	// Room registry routes
	rooms := protected.Group("/rooms")
	rooms.Get("/", roomController.GetRooms)
	rooms.Get("/:id", roomController.GetRoom)
	rooms.Post("/", middleware.RequireRegistrarOrAbove(), roomController.CreateRoom)
	rooms.Put("/:id", middleware.RequireRegistrarOrAbove(), roomController.UpdateRoom)
	rooms.Delete("/:id", middleware.RequireAdmin(), roomController.DeleteRoom)

	// Subject registry routes
	subjects := protected.Group("/subjects")
	subjects.Get("/", subjectController.GetSubjects)
	subjects.Get("/:id", subjectController.GetSubject)
	subjects.Post("/", middleware.RequireRegistrarOrAbove(), subjectController.CreateSubject)
	subjects.Put("/:id", middleware.RequireRegistrarOrAbove(), subjectController.UpdateSubject)
	subjects.Delete("/:id", middleware.RequireAdmin(), subjectController.DeleteSubject)

	// Class registry routes
	classes := protected.Group("/classes")
	classes.Get("/", classController.GetClasses)
	classes.Get("/:id", classController.GetClass)
	classes.Post("/", middleware.RequireRegistrarOrAbove(), classController.CreateClass)
	classes.Put("/:id", middleware.RequireRegistrarOrAbove(), classController.UpdateClass)
	classes.Delete("/:id", middleware.RequireAdmin(), classController.DeleteClass)

	// Bulk registry import (registrar or above)
	protected.Post("/import/:resource", middleware.RequireRegistrarOrAbove(), importController.Import)

	// Schedule grid routes
	schedules := protected.Group("/schedules")
	schedules.Get("/grid", scheduleController.GetGrid)
	schedules.Get("/documents", scheduleController.GetDocuments)
	schedules.Post("/events", middleware.RequireRegistrarOrAbove(), scheduleController.CreateEvents)
	schedules.Put("/events/:id", middleware.RequireRegistrarOrAbove(), scheduleController.UpdateEvent)
	schedules.Delete("/events/:id", middleware.RequireRegistrarOrAbove(), scheduleController.DeleteEvent)
	schedules.Get("/events/:id/history", scheduleController.GetEventHistory)
	schedules.Post("/save", middleware.RequireRegistrarOrAbove(), scheduleController.SaveNow)
	schedules.Get("/save-status", scheduleController.GetSaveStatus)
	schedules.Post("/reset", middleware.RequireRegistrarOrAbove(), scheduleController.ResetSchedule)
	schedules.Get("/export", scheduleController.ExportSchedule)

	// Snapshot routes
	snapshots := schedules.Group("/snapshots")
	snapshots.Get("/", scheduleController.GetSnapshots)
	snapshots.Post("/", middleware.RequireRegistrarOrAbove(), scheduleController.CreateSnapshot)
	snapshots.Post("/:snapshot_id/restore", middleware.RequireRegistrarOrAbove(), scheduleController.RestoreSnapshot)
	snapshots.Delete("/:snapshot_id", middleware.RequireAdmin(), scheduleController.DeleteSnapshot)

	// Schedule type configuration routes (admin only for mutations)
	configs := protected.Group("/schedule-configs")
	configs.Get("/", configController.GetConfigs)
	configs.Get("/:code", configController.GetConfig)
	configs.Post("/", middleware.RequireAdmin(), configController.CreateConfig)
	configs.Put("/:code", middleware.RequireAdmin(), configController.UpdateConfig)
	configs.Delete("/:code", middleware.RequireAdmin(), configController.DeleteConfig)

	// Archive routes (admin only)
	archives := protected.Group("/archives", middleware.RequireAdmin())
	archives.Get("/", archiveController.GetArchives)
	archives.Post("/run", archiveController.RunArchive)

	// Log management routes (admin only)
	logs := protected.Group("/logs", middleware.RequireAdmin())
	logs.Get("/", logController.GetLogs)
	logs.Get("/stats", logController.GetLogStats)
	logs.Get("/export", logController.ExportLogs)
	logs.Get("/:id", logController.GetLog)
	logs.Delete("/old", logController.DeleteOldLogs)
	logs.Post("/flush-cache", logController.FlushCachedLogs)

	// WebSocket routes
	ws := protected.Group("/ws")
	ws.Get("/stats", middleware.RequireAdmin(), wsController.GetWebSocketStats)

	// WebSocket connection endpoint - use websocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", wsController.WebSocketHandler())
}
