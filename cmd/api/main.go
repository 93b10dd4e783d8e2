package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-taller-records/internal/handler"
	"go-taller-records/internal/model"
	"go-taller-records/internal/repository"
	"go-taller-records/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.PurchaseRecord{}, &model.LineItem{}, &model.ServiceRecord{})

	// 3. Dependency Injection (Wiring Layers)
	purchaseRepo := repository.NewPurchaseRepo(db)
	serviceRecordRepo := repository.NewServiceRecordRepo(db)

	purchaseHandler := handler.NewPurchaseHandler(purchaseRepo)
	serviceRecordHandler := handler.NewServiceRecordHandler(serviceRecordRepo)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Taller Records v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 5. Routes
	api := app.Group("/api/v1")

	// Purchase Routes
	api.Get("/purchases", purchaseHandler.GetPurchases)
	api.Get("/purchases/export", purchaseHandler.ExportPurchases)
	api.Get("/purchases/:id", purchaseHandler.GetPurchase)
	api.Post("/purchases", purchaseHandler.CreatePurchase)
	api.Put("/purchases/:id", purchaseHandler.UpdatePurchase)
	api.Delete("/purchases/:id", purchaseHandler.DeletePurchase)

	// Service Record Routes
	api.Get("/service-records", serviceRecordHandler.GetServiceRecords)
	api.Get("/service-records/:id", serviceRecordHandler.GetServiceRecord)
	api.Get("/service-records/:id/sheet", serviceRecordHandler.GetServiceRecordSheet)
	api.Post("/service-records", serviceRecordHandler.CreateServiceRecord)
	api.Put("/service-records/:id", serviceRecordHandler.UpdateServiceRecord)
	api.Delete("/service-records/:id", serviceRecordHandler.DeleteServiceRecord)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
