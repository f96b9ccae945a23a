package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quoter/model"
)

const SelectProductColumns = `
	id, category, sub_category, name, color, unit,
	price, inventory, incoming, restock_date
`

// GetProductByID returns nil without error when the id is unknown.
func GetProductByID(ctx context.Context, dbtx DBTX, id string) (*model.Product, error) {
	var p model.Product
	q := `SELECT ` + SelectProductColumns + ` FROM products WHERE id = ?`
	if err := dbtx.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &p, nil
}

func ListProducts(ctx context.Context, dbtx DBTX, heroOnly bool) ([]model.Product, error) {
	q := `SELECT ` + SelectProductColumns + ` FROM products`
	var args []interface{}
	if heroOnly {
		q += ` WHERE sub_category = ?`
		args = append(args, model.HeroSubCategory)
	}
	q += ` ORDER BY position, id`

	var products []model.Product
	if err := dbtx.SelectContext(ctx, &products, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindAccessoryProducts returns products of the category filling the given sub-category role
// in the given color, in load order.
func FindAccessoryProducts(ctx context.Context, dbtx DBTX, category, subCategory, color string) ([]model.Product, error) {
	q := `SELECT ` + SelectProductColumns + `
		FROM products
		WHERE category = ? AND sub_category = ? AND color = ?
		ORDER BY position, id`

	var products []model.Product
	if err := dbtx.SelectContext(ctx, &products, q, category, subCategory, color); err != nil {
		return nil, fmt.Errorf("failed to find %s/%s products in %s: %w", category, subCategory, color, err)
	}
	return products, nil
}
