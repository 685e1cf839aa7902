package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pantry/models"
)

func newTestAPI(t *testing.T) (*API, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&models.Address{},
		&models.Entity{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return New(db), db
}

func seedVendor(t *testing.T, db *gorm.DB) models.Entity {
	t.Helper()

	vendor := models.Entity{
		FName: "Marta",
		LName: "Reyes",
		Email: "orders@greenfields.example",
		Phone: "503-555-0141",
		Type:  models.EntityTypeVendor,
	}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("failed to seed vendor: %v", err)
	}
	return vendor
}

func seedIngredient(t *testing.T, db *gorm.DB, vendorID uint, name string, cost float64) models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name, Unit: "lb", CostPerUnit: cost, VendorID: vendorID}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to seed ingredient %q: %v", name, err)
	}
	return ingredient
}

func seedRecipe(t *testing.T, db *gorm.DB, name string, menuPrice *float64) models.Recipe {
	t.Helper()

	recipe := models.Recipe{Name: name, MenuPrice: menuPrice}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to seed recipe %q: %v", name, err)
	}
	return recipe
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return payload
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var payload []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return payload
}

func assertMessage(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if rr.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rr.Code, rr.Body.String())
	}
	payload := decodeMap(t, rr)
	if payload["message"] != message {
		t.Fatalf("expected message %q, got %q", message, payload["message"])
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
