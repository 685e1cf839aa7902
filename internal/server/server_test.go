package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pantry/models"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
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
	return db
}

func TestNewConfiguresAddrAndHandler(t *testing.T) {
	db := newTestDatabase(t)

	srv, err := New(Config{Addr: ":5001", Database: db})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if srv.httpServer.Addr != ":5001" {
		t.Fatalf("expected server addr :5001, got %q", srv.httpServer.Addr)
	}
	if srv.httpServer.Handler == nil {
		t.Fatal("expected handler to be configured")
	}
}

func TestServerServesIngredientResource(t *testing.T) {
	db := newTestDatabase(t)

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

	srv, err := New(Config{Addr: ":5001", Database: db})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	body := `{"name":"Roma Tomatoes","unit":"lb","cost_per_unit":2.25,"vendor_id":` + strconv.Itoa(int(vendor.ID)) + `}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingredient", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 from POST /ingredient, got %d: %s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Message != "Ingredient created successfully" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}

func TestServerHandler(t *testing.T) {
	db := newTestDatabase(t)

	srv, err := New(Config{Addr: ":9090", Database: db})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	handler := srv.Handler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
}
