package routes

import (
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/controllers"
	"github.com/brandworks/crm-api/middleware"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires middleware and every API route
func NewRouter(cfg *config.Config, zaplog *zap.Logger) (*gin.Engine, error) {
	if err := utils.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(zaplog))
	router.Use(middleware.Recovery(cfg, zaplog))
	router.Use(cors.New(corsConfig(cfg)))

	api := router.Group("/api")
	{
		api.GET("/health", controllers.Health)
		api.GET("/database/status", controllers.DatabaseStatus)

		// Login issues the bearer token; logout and /me require it
		api.POST("/login", controllers.Login)
		authed := api.Group("", middleware.EnsureValidToken(cfg))
		authed.POST("/logout", controllers.Logout)
		authed.GET("/me", controllers.GetMe)

		employees := api.Group("/employees")
		employees.GET("", controllers.ListEmployees)
		employees.POST("", controllers.CreateEmployee)
		employees.GET("/:id", controllers.GetEmployee)
		employees.PUT("/:id", controllers.UpdateEmployee)
		employees.DELETE("/:id", controllers.DeleteEmployee)

		orders := api.Group("/orders")
		orders.GET("", controllers.ListOrders)
		orders.POST("", controllers.CreateOrder)
		orders.GET("/:id", controllers.GetOrder)
		orders.PUT("/:id", controllers.UpdateOrder)
		orders.DELETE("/:id", controllers.DeleteOrder)
		orders.POST("/:id/payments", controllers.AddPayment)
		orders.PATCH("/:id/rows/:index", controllers.UpdateOrderRow)
		api.GET("/pending-services", controllers.ListPendingServices)

		designs := api.Group("/design-requests")
		designs.GET("", controllers.ListDesignRequests)
		designs.POST("", controllers.CreateDesignRequest)
		designs.GET("/service-queue", controllers.GetDesignServiceQueue)
		designs.GET("/:id", controllers.GetDesignRequest)
		designs.PUT("/:id", controllers.UpdateDesignRequest)
		designs.DELETE("/:id", controllers.DeleteDesignRequest)
		designs.PATCH("/:id/status", controllers.UpdateDesignStatus)
		designs.POST("/:id/claim", controllers.ClaimDesignRequest)
		designs.POST("/:id/pause", controllers.PauseDesignRequest)
		designs.POST("/:id/resume", controllers.ResumeDesignRequest)
		designs.POST("/:id/assign-service", controllers.AssignDesignService)
		designs.POST("/:id/processed", controllers.MarkDesignProcessed)

		clients := api.Group("/prospective-clients")
		clients.GET("", controllers.ListProspectiveClients)
		clients.POST("", controllers.CreateProspectiveClient)
		clients.GET("/follow-ups", controllers.ListFollowUps)
		clients.GET("/:id", controllers.GetProspectiveClient)
		clients.PUT("/:id", controllers.UpdateProspectiveClient)
		clients.DELETE("/:id", controllers.DeleteProspectiveClient)
		clients.PATCH("/:id/status", controllers.UpdateProspectiveClientStatus)

		inventory := api.Group("/inventory")
		inventory.GET("", controllers.ListInventory)
		inventory.POST("", controllers.CreateInventoryItem)
		inventory.GET("/:id", controllers.GetInventoryItem)
		inventory.PUT("/:id", controllers.UpdateInventoryItem)
		inventory.DELETE("/:id", controllers.DeleteInventoryItem)
		inventory.PATCH("/:id/adjust", controllers.AdjustInventoryItem)

		vendors := api.Group("/vendors")
		vendors.GET("", controllers.ListVendors)
		vendors.POST("", controllers.CreateVendor)
		vendors.GET("/:id", controllers.GetVendor)
		vendors.PUT("/:id", controllers.UpdateVendor)
		vendors.DELETE("/:id", controllers.DeleteVendor)

		appointments := api.Group("/appointments")
		appointments.GET("", controllers.ListAppointments)
		appointments.POST("", controllers.CreateAppointment)
		appointments.GET("/:id", controllers.GetAppointment)
		appointments.PUT("/:id", controllers.UpdateAppointment)
		appointments.DELETE("/:id", controllers.DeleteAppointment)

		targets := api.Group("/targets")
		targets.GET("", controllers.ListTargets)
		targets.POST("", controllers.CreateTarget)
		targets.GET("/:id", controllers.GetTarget)
		targets.PUT("/:id", controllers.UpdateTarget)
		targets.DELETE("/:id", controllers.DeleteTarget)

		interactions := api.Group("/interactions")
		interactions.GET("", controllers.ListInteractions)
		interactions.POST("", controllers.CreateInteraction)
		interactions.DELETE("/:id", controllers.DeleteInteraction)

		api.GET("/performance", controllers.GetPerformance)
		api.GET("/performance/monthly", controllers.GetMonthlyPerformance)
		api.GET("/dashboard/counts", controllers.GetDashboardCounts)

		api.GET("/executiveLogins", controllers.ListLoginRecords)
		api.GET("/logout-history", controllers.ListLogoutRecords)
		api.GET("/logout-history/download", controllers.DownloadLogoutRecords)

		uploads := api.Group("/employee-uploads")
		uploads.GET("", controllers.ListEmployeeUploads)
		uploads.POST("", controllers.CreateEmployeeUpload)
		uploads.GET("/:id", controllers.GetEmployeeUpload)
		uploads.DELETE("/:id", controllers.DeleteEmployeeUpload)
		api.GET("/uploads/:filename", controllers.GetUploadedImage)
	}

	return router, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !cfg.AllowsAllOrigins(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.AllowsAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	return corsCfg
}
