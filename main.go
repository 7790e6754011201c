package main

import (
	"fmt"
	"log"
	"os"

	"coursemart-backend/config"
	"coursemart-backend/models"
	"coursemart-backend/routes"
	"coursemart-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.ProductType{},
		&models.Product{},
		&models.Schedule{},
		&models.PaymentMethod{},
		&models.Cart{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.NotificationLog{},
	)
}

func main() {
	services.NewScheduleNotifier(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
