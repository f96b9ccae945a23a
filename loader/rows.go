package loader

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"quoter/apperr"
	"quoter/model"
)

// Column names expected in each source, as in the exported spreadsheets.
var (
	productColumns     = []string{"id", "category", "sub_category", "name", "color", "unit", "price", "inventory", "incoming", "restock_date"}
	requirementColumns = []string{"category", "required_accessory", "quantity_multiplier"}
	ruleColumns        = []string{"category", "color_matching_type"}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type productInput struct {
	ID          string          `validate:"required"`
	Category    string          `validate:"required"`
	SubCategory string          `validate:"required"`
	Name        string          `validate:"required"`
	Color       string
	Unit        string
	Price       decimal.Decimal `validate:"gte=0"`
	Inventory   int64           `validate:"gte=0"`
	Incoming    int64           `validate:"gte=0"`
	RestockDate string          `validate:"omitempty,datetime=2006-01-02"`
}

type requirementInput struct {
	Category          string  `validate:"required"`
	RequiredAccessory string  `validate:"required"`
	Multiplier        float64 `validate:"gte=0"`
}

type ruleInput struct {
	Category          string `validate:"required"`
	ColorMatchingType string `validate:"omitempty,oneof=mandatory optional none"`
}

func parseProduct(t *table, row []string) (model.Product, error) {
	in := productInput{
		ID:          t.cell(row, "id"),
		Category:    t.cell(row, "category"),
		SubCategory: t.cell(row, "sub_category"),
		Name:        t.cell(row, "name"),
		Color:       t.cell(row, "color"),
		Unit:        t.cell(row, "unit"),
		RestockDate: t.cell(row, "restock_date"),
	}

	var err error
	if in.Price, err = parseDecimal(t.cell(row, "price")); err != nil {
		return model.Product{}, fmt.Errorf("price: %w", err)
	}
	if in.Inventory, err = parseCount(t.cell(row, "inventory")); err != nil {
		return model.Product{}, fmt.Errorf("inventory: %w", err)
	}
	if in.Incoming, err = parseCount(t.cell(row, "incoming")); err != nil {
		return model.Product{}, fmt.Errorf("incoming: %w", err)
	}
	if err := validateRow(in); err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:          in.ID,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Name:        in.Name,
		Color:       in.Color,
		Unit:        in.Unit,
		Price:       in.Price,
		Inventory:   in.Inventory,
		Incoming:    in.Incoming,
		RestockDate: sql.NullString{String: in.RestockDate, Valid: in.RestockDate != ""},
	}, nil
}

func parseRequirement(t *table, row []string, position int) (model.Requirement, error) {
	in := requirementInput{
		Category:          t.cell(row, "category"),
		RequiredAccessory: t.cell(row, "required_accessory"),
	}
	raw := t.cell(row, "quantity_multiplier")
	m, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(m) || math.IsInf(m, 0) {
		return model.Requirement{}, fmt.Errorf("quantity_multiplier: %q is not a finite number", raw)
	}
	in.Multiplier = m
	if err := validateRow(in); err != nil {
		return model.Requirement{}, err
	}
	return model.Requirement{
		Category:          in.Category,
		RequiredAccessory: in.RequiredAccessory,
		Multiplier:        in.Multiplier,
		Position:          position,
	}, nil
}

func parseRule(t *table, row []string, position int) (model.ColorRule, error) {
	in := ruleInput{
		Category:          t.cell(row, "category"),
		ColorMatchingType: strings.ToLower(t.cell(row, "color_matching_type")),
	}
	if err := validateRow(in); err != nil {
		return model.ColorRule{}, err
	}
	mode, err := model.ParseMatchingMode(in.ColorMatchingType)
	if err != nil {
		return model.ColorRule{}, err
	}
	return model.ColorRule{Category: in.Category, Mode: mode, Position: position}, nil
}

func validateRow(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), validationMessage(fe)))
	}
	return apperr.New(apperr.CodeInvalidInput, strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date formatted %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "$")
	return decimal.NewFromString(s)
}

// parseCount accepts "12" as well as spreadsheet-style "12.0".
func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int64(f), nil
}
