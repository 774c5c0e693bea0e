package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"residence-backend/config"
	"residence-backend/controllers"
	"residence-backend/middleware"
)

// SetupRouter wires every controller under /api/v1.
func SetupRouter(
	cfg config.Config,
	authCtrl *controllers.AuthController,
	houseCtrl *controllers.HouseController,
	reservationCtrl *controllers.ReservationController,
	checkinCtrl *controllers.CheckinController,
	maintenanceCtrl *controllers.MaintenanceController,
	financeCtrl *controllers.FinanceController,
	dashboardCtrl *controllers.DashboardController,
	checklistCtrl *controllers.ChecklistController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	allowCredentials := true
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Identify(cfg.JWTSecret))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtrl.Register)
			auth.POST("/login", authCtrl.Login)
			auth.POST("/login-json", authCtrl.LoginJSON)
			auth.GET("/me", middleware.RequireAuth(), authCtrl.Me)
			auth.POST("/forgot-password", authCtrl.ForgotPassword)
			auth.POST("/guest-access", authCtrl.GuestAccess)
		}

		houses := api.Group("/houses")
		{
			houses.GET("", houseCtrl.List)
			houses.GET("/:id", houseCtrl.Get)
			houses.POST("", houseCtrl.Create)
			houses.PUT("/:id", houseCtrl.Update)
			houses.DELETE("/:id", houseCtrl.Delete)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", reservationCtrl.List)
			reservations.GET("/:id", reservationCtrl.Get)
			reservations.POST("", reservationCtrl.Create)
			reservations.PUT("/:id", reservationCtrl.Update)
			reservations.DELETE("/:id", reservationCtrl.Delete)
			reservations.GET("/:id/availability", reservationCtrl.CheckAvailability)
		}

		checkins := api.Group("/checkins")
		{
			checkins.GET("", checkinCtrl.List)
			checkins.GET("/checkouts/", checkinCtrl.ListCheckouts)
			checkins.GET("/:id", checkinCtrl.Get)
			checkins.POST("", checkinCtrl.Create)
			checkins.PUT("/:id", checkinCtrl.Update)
			checkins.DELETE("/:id", checkinCtrl.Delete)
			checkins.POST("/:id/checkout", checkinCtrl.CreateCheckout)
		}

		maintenance := api.Group("/maintenance")
		{
			maintenance.GET("/types", maintenanceCtrl.Types)
			maintenance.GET("", maintenanceCtrl.List)
			maintenance.GET("/stats/summary", maintenanceCtrl.Stats)
			maintenance.GET("/:id", maintenanceCtrl.Get)
			maintenance.POST("", maintenanceCtrl.Create)
			maintenance.PUT("/:id", maintenanceCtrl.Update)
			maintenance.DELETE("/:id", maintenanceCtrl.Delete)
		}

		finance := api.Group("/finance")
		{
			finance.GET("", financeCtrl.List)
			finance.GET("/summary/:houseId", financeCtrl.Summary)
			finance.GET("/revenue/monthly", financeCtrl.MonthlyRevenue)
			finance.GET("/:id", financeCtrl.Get)
			finance.POST("", financeCtrl.Create)
			finance.PUT("/:id", financeCtrl.Update)
			finance.DELETE("/:id", financeCtrl.Delete)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", dashboardCtrl.Dashboard)
			dashboard.GET("/metrics", dashboardCtrl.Metrics)
			dashboard.GET("/occupancy", dashboardCtrl.Occupancy)
			dashboard.GET("/revenue", dashboardCtrl.Revenue)
			dashboard.GET("/house-stats", dashboardCtrl.HouseStats)
			dashboard.GET("/period-stats", dashboardCtrl.PeriodStats)
		}

		checklist := api.Group("/checklist")
		{
			checklist.GET("/categories", checklistCtrl.Categories)
			checklist.GET("/items", checklistCtrl.Items)
			checklist.GET("/items/:id", checklistCtrl.GetItem)
			checklist.POST("/items", checklistCtrl.CreateItem)
			checklist.PUT("/items/:id", checklistCtrl.UpdateItem)
			checklist.DELETE("/items/:id", checklistCtrl.DeleteItem)
			checklist.GET("/status/:houseId", checklistCtrl.HouseStatus)
			checklist.POST("/status/:houseId/complete", checklistCtrl.CompleteTask)
			checklist.POST("/categories/:houseId/complete", checklistCtrl.CompleteCategory)
			checklist.GET("/readiness/:houseId", checklistCtrl.Readiness)
			checklist.GET("/progress/:houseId", checklistCtrl.Progress)
		}
	}

	return r
}
