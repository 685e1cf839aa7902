package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "pantry/internal/log"
	"pantry/models"
)

// New returns an in-memory sqlite database seeded with representative
// restaurant data: a vendor with an address, a customer, a handful of priced
// ingredients, and one costed recipe.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:pantry-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Address{},
		&models.Entity{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	warehouse := models.Address{
		AddressLine1: "214 Produce Row",
		City:         "Portland",
		State:        "OR",
		ZipCode:      "97209",
		Country:      "USA",
	}
	if err := database.WithContext(ctx).Create(&warehouse).Error; err != nil {
		return err
	}

	greenfields := models.Entity{
		FName:     "Marta",
		LName:     "Reyes",
		Email:     "orders@greenfields.example",
		Phone:     "503-555-0141",
		Type:      models.EntityTypeVendor,
		AddressID: &warehouse.ID,
	}
	harbor := models.Entity{
		FName: "Dale",
		LName: "Okafor",
		Email: "dale@harborseafood.example",
		Phone: "503-555-0187",
		Type:  models.EntityTypeVendor,
	}
	regular := models.Entity{
		FName: "June",
		LName: "Calloway",
		Email: "june.calloway@example.com",
		Phone: "503-555-0112",
		Type:  models.EntityTypeCustomer,
	}
	for _, entity := range []*models.Entity{&greenfields, &harbor, &regular} {
		if err := database.WithContext(ctx).Create(entity).Error; err != nil {
			return err
		}
	}

	tomatoes := models.Ingredient{Name: "Roma Tomatoes", Unit: "lb", CostPerUnit: 2.25, VendorID: greenfields.ID}
	basil := models.Ingredient{Name: "Fresh Basil", Unit: "oz", CostPerUnit: 0.85, VendorID: greenfields.ID}
	mozzarella := models.Ingredient{Name: "Mozzarella", Unit: "lb", CostPerUnit: 5.4, VendorID: harbor.ID}
	oliveOil := models.Ingredient{Name: "Olive Oil", Unit: "l", CostPerUnit: 9.75, VendorID: harbor.ID}
	for _, ingredient := range []*models.Ingredient{&tomatoes, &basil, &mozzarella, &oliveOil} {
		if err := database.WithContext(ctx).Create(ingredient).Error; err != nil {
			return err
		}
	}

	menuPrice := 14.5
	caprese := models.Recipe{
		Name:        "Caprese Salad",
		Description: "Tomato, mozzarella and basil with an olive oil finish.",
		MenuPrice:   &menuPrice,
	}
	if err := database.WithContext(ctx).Create(&caprese).Error; err != nil {
		return err
	}

	lines := []models.RecipeIngredient{
		{RecipeID: caprese.ID, IngredientID: tomatoes.ID, Quantity: 0.75, Unit: "lb"},
		{RecipeID: caprese.ID, IngredientID: mozzarella.ID, Quantity: 0.5, Unit: "lb"},
		{RecipeID: caprese.ID, IngredientID: basil.ID, Quantity: 1.5, Unit: "oz"},
		{RecipeID: caprese.ID, IngredientID: oliveOil.ID, Quantity: 0.05, Unit: "l"},
	}
	for _, line := range lines {
		lineCopy := line
		if err := database.WithContext(ctx).Create(&lineCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
