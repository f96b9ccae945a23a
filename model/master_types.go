package model

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HeroSubCategory marks a sellable main item. Any other sub_category names an accessory role.
const HeroSubCategory = "Hero"

// Product is one row of the products table.
type Product struct {
	ID          string          `db:"id" json:"id"`
	Category    string          `db:"category" json:"category"`
	SubCategory string          `db:"sub_category" json:"subCategory"`
	Name        string          `db:"name" json:"name"`
	Color       string          `db:"color" json:"color"`
	Unit        string          `db:"unit" json:"unit"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Inventory   int64           `db:"inventory" json:"inventory"`
	Incoming    int64           `db:"incoming" json:"incoming"`
	RestockDate sql.NullString  `db:"restock_date" json:"restockDate"`
}

// IsHero reports whether the product is a main item that pulls in accessories.
func (p Product) IsHero() bool {
	return p.SubCategory == HeroSubCategory
}

// Requirement maps a hero category to an accessory sub-category and the accessory units
// needed per unit of hero quantity.
type Requirement struct {
	Category          string  `db:"category" json:"category"`
	RequiredAccessory string  `db:"required_accessory" json:"requiredAccessory"`
	Multiplier        float64 `db:"quantity_multiplier" json:"quantityMultiplier"`
	Position          int     `db:"position" json:"position"`
}

// RequirementMatch is a requirement together with the products that can fill it.
type RequirementMatch struct {
	Requirement
	Products []Product
}

// Accessory is a resolved accessory product and the multiplier that applies to it.
type Accessory struct {
	Product    Product
	Multiplier float64
}

// MatchingMode controls how accessory color relates to hero color.
type MatchingMode string

const (
	MatchMandatory MatchingMode = "Mandatory"
	MatchOptional  MatchingMode = "Optional"
	MatchNone      MatchingMode = "None"
)

// ParseMatchingMode accepts the rule text case-insensitively.
func ParseMatchingMode(s string) (MatchingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mandatory":
		return MatchMandatory, nil
	case "optional":
		return MatchOptional, nil
	case "none", "":
		return MatchNone, nil
	}
	return "", fmt.Errorf("unknown color matching type %q", s)
}

// ColorRule is one row of the rules table.
type ColorRule struct {
	Category string       `db:"category" json:"category"`
	Mode     MatchingMode `db:"color_matching_type" json:"colorMatchingType"`
	Position int          `db:"position" json:"position"`
}
