// controllers/product_test.go
package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"coursemart-backend/config"
	"coursemart-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestProductEndpoints(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.ProductType{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	r.POST("/api/products", CreateProduct)
	r.GET("/api/products/:id", GetProduct)
	r.PUT("/api/products/:id", UpdateProduct)
	r.PUT("/api/products/:id/stock", AdjustProductStock)

	var productID uint

	t.Run("create", func(t *testing.T) {
		w := postJSON(r, "/api/products", gin.H{
			"name":  "Go Fundamentals",
			"price": 150000,
			"stock": 5,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var product models.Product
		if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		productID = product.ID
	})

	t.Run("create rejects unknown product type", func(t *testing.T) {
		w := postJSON(r, "/api/products", gin.H{
			"name":          "SQL Deep Dive",
			"price":         200000,
			"productTypeId": 9999,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
		}
	})

	t.Run("update leaves stock alone", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d", productID),
			gin.H{"name": "Go Fundamentals 2nd Ed", "stock": 999})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			t.Fatalf("reload product: %v", err)
		}
		if product.Name != "Go Fundamentals 2nd Ed" {
			t.Errorf("name = %q", product.Name)
		}
		if product.Stock != 5 {
			t.Errorf("stock = %d, want 5 untouched by edit", product.Stock)
		}
	})

	t.Run("restock", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d/stock", productID),
			gin.H{"delta": 10})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var product models.Product
		if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if product.Stock != 15 {
			t.Errorf("stock = %d, want 15", product.Stock)
		}
	})

	t.Run("adjustment cannot go negative", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d/stock", productID),
			gin.H{"delta": -100})
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409 (body %s)", w.Code, w.Body.String())
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			t.Fatalf("reload product: %v", err)
		}
		if product.Stock != 15 {
			t.Errorf("stock = %d, want 15 unchanged", product.Stock)
		}
	})

	t.Run("adjust unknown product", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/products/9999/stock", gin.H{"delta": 1})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
		}
	})
}
