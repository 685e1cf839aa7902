package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	"pantry/internal/config"
	"pantry/internal/db"
	"pantry/models"
)

// priceRow is one line of a vendor price list: an ingredient name, the unit
// it is sold in, and the cost per unit.
type priceRow struct {
	Name        string
	Unit        string
	CostPerUnit float64
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: import_prices <vendor-email> <price-list.csv|.pdf>")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(vendorEmail, path string) error {
	if strings.TrimSpace(vendorEmail) == "" {
		return fmt.Errorf("vendor email must not be empty")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("price list path must not be empty")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate price list: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	rows, err := readPriceList(path)
	if err != nil {
		return fmt.Errorf("read price list: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("price list contains no usable rows")
	}

	vendor, err := resolveVendor(database, vendorEmail)
	if err != nil {
		return fmt.Errorf("resolve vendor: %w", err)
	}

	imported := 0
	for idx, row := range rows {
		if err := database.Transaction(func(tx *gorm.DB) error {
			return upsertIngredient(tx, vendor.ID, row)
		}); err != nil {
			return fmt.Errorf("import row %d (%s): %w", idx+1, row.Name, err)
		}
		imported++
	}

	fmt.Printf("imported %d ingredient prices for vendor %s\n", imported, vendor.Email)
	return nil
}

func resolveVendor(database *gorm.DB, email string) (*models.Entity, error) {
	var vendor models.Entity
	err := database.
		Where("lower(email) = ? AND type = ?", strings.ToLower(strings.TrimSpace(email)), models.EntityTypeVendor).
		First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no vendor with email %q", email)
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func upsertIngredient(tx *gorm.DB, vendorID uint, row priceRow) error {
	var existing models.Ingredient
	err := tx.Where("name = ? AND vendor_id = ?", row.Name, vendorID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ingredient := models.Ingredient{
			Name:        row.Name,
			Unit:        row.Unit,
			CostPerUnit: row.CostPerUnit,
			VendorID:    vendorID,
		}
		return tx.Create(&ingredient).Error
	case err != nil:
		return err
	default:
		return tx.Model(&existing).Updates(map[string]any{
			"unit":          row.Unit,
			"cost_per_unit": row.CostPerUnit,
		}).Error
	}
}

func readPriceList(path string) ([]priceRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractTextFromPDF(data)
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		return parsePriceText(text)
	default:
		return parsePriceCSV(bytes.NewReader(data))
	}
}

// parsePriceCSV expects name,unit,cost_per_unit records, with an optional
// header row.
func parsePriceCSV(r io.Reader) ([]priceRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []priceRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 3 {
			continue
		}

		row, ok := buildPriceRow(record[0], record[1], record[2])
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parsePriceText interprets extracted PDF text, one ingredient per line with
// the unit and cost as the last two whitespace-separated tokens.
func parsePriceText(text string) ([]priceRow, error) {
	var rows []priceRow
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		name := strings.Join(fields[:len(fields)-2], " ")
		row, ok := buildPriceRow(name, fields[len(fields)-2], fields[len(fields)-1])
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func buildPriceRow(name, unit, cost string) (priceRow, bool) {
	trimmedName := strings.TrimSpace(name)
	trimmedUnit := strings.TrimSpace(unit)
	if trimmedName == "" || trimmedUnit == "" {
		return priceRow{}, false
	}

	parsed, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(cost), "$"), 64)
	if err != nil || parsed < 0 {
		return priceRow{}, false
	}

	return priceRow{Name: trimmedName, Unit: trimmedUnit, CostPerUnit: parsed}, true
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
