package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"residence-backend/config"
	"residence-backend/controllers"
	"residence-backend/routes"
	"residence-backend/services"
)

func main() {
	importPath := flag.String("import", "", "import a db.json export and exit")
	flag.Parse()

	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.Load()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	if *importPath != "" {
		if err := services.NewImportService(db).ImportFile(*importPath); err != nil {
			log.Fatalf("❌ Import failed: %v", err)
		}
		log.Printf("✅ Import from %s completed", *importPath)
		return
	}

	// Initialize services
	authService := services.NewAuthService(db)
	houseService := services.NewHouseService(db)
	reservationService := services.NewReservationService(db)
	checkinService := services.NewCheckinService(db)
	maintenanceService := services.NewMaintenanceService(db)
	financeService := services.NewFinanceService(db)
	dashboardService := services.NewDashboardService(db)
	checklistService := services.NewChecklistService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, &cfg)
	houseController := controllers.NewHouseController(houseService)
	reservationController := controllers.NewReservationController(reservationService)
	checkinController := controllers.NewCheckinController(checkinService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)
	financeController := controllers.NewFinanceController(financeService)
	dashboardController := controllers.NewDashboardController(dashboardService)
	checklistController := controllers.NewChecklistController(checklistService)

	router := routes.SetupRouter(
		cfg,
		authController,
		houseController,
		reservationController,
		checkinController,
		maintenanceController,
		financeController,
		dashboardController,
		checklistController,
	)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
