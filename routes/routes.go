package routes

import (
	"os"
	"strings"

	"coursemart-backend/config"
	"coursemart-backend/controllers"
	"coursemart-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/verify-email", controllers.VerifyEmail)
		auth.POST("/request-password-reset", controllers.RequestPasswordReset)
		auth.POST("/reset-password", controllers.ResetPassword)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Product routes
		products := api.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.POST("", utils.AdminOnly(), controllers.CreateProduct)
			products.PUT("/:id", utils.AdminOnly(), controllers.UpdateProduct)
			products.PUT("/:id/stock", utils.AdminOnly(), controllers.AdjustProductStock)
			products.DELETE("/:id", utils.AdminOnly(), controllers.DeleteProduct)
		}

		// Product type routes
		productTypes := api.Group("/product-types")
		{
			productTypes.GET("", controllers.GetProductTypes)
			productTypes.GET("/:id", controllers.GetProductType)
			productTypes.POST("", utils.AdminOnly(), controllers.CreateProductType)
			productTypes.PUT("/:id", utils.AdminOnly(), controllers.UpdateProductType)
			productTypes.DELETE("/:id", utils.AdminOnly(), controllers.DeleteProductType)
		}

		// Schedule routes
		schedules := api.Group("/schedules")
		{
			schedules.GET("", controllers.GetSchedules)
			schedules.GET("/:id", controllers.GetSchedule)
			schedules.POST("", utils.AdminOnly(), controllers.CreateSchedule)
			schedules.PUT("/:id", utils.AdminOnly(), controllers.UpdateSchedule)
			schedules.DELETE("/:id", utils.AdminOnly(), controllers.DeleteSchedule)
		}

		// Payment method routes
		paymentMethods := api.Group("/payment-methods")
		{
			paymentMethods.GET("", controllers.GetPaymentMethods)
			paymentMethods.GET("/:id", controllers.GetPaymentMethod)
			paymentMethods.POST("", utils.AdminOnly(), controllers.CreatePaymentMethod)
			paymentMethods.PUT("/:id", utils.AdminOnly(), controllers.UpdatePaymentMethod)
			paymentMethods.DELETE("/:id", utils.AdminOnly(), controllers.DeletePaymentMethod)
		}

		// Cart routes
		carts := api.Group("/cart")
		{
			carts.GET("", controllers.GetCart)
			carts.POST("", controllers.AddToCart)
			carts.DELETE("/:id", controllers.RemoveFromCart)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.POST("/checkout", controllers.CheckoutCart)
			invoices.GET("/user/:userId", controllers.GetInvoicesByUser)
			invoices.GET("/upcoming/:userId", controllers.GetUpcomingSchedules)
			invoices.GET("/search", controllers.SearchInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.GET("/:id/items", controllers.GetInvoiceItems)
			invoices.GET("", utils.AdminOnly(), controllers.GetAllInvoices)
			invoices.DELETE("/:id", utils.AdminOnly(), controllers.DeleteInvoice)
		}

		// User routes (admin)
		users := api.Group("/users", utils.AdminOnly())
		{
			users.GET("", controllers.GetUsers)
			users.GET("/:id", controllers.GetUser)
			users.PUT("/deactivate/:id", controllers.DeactivateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", utils.AdminOnly(), reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", utils.AdminOnly(), controllers.GetDashboardOverview)
	}

	return r
}
