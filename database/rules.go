package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quoter/model"
)

// GetRuleByCategory returns the first rule row for the category, or nil when there is none.
func GetRuleByCategory(ctx context.Context, dbtx DBTX, category string) (*model.ColorRule, error) {
	var r model.ColorRule
	const q = `
		SELECT category, color_matching_type, position
		FROM rules
		WHERE category = ?
		ORDER BY position
		LIMIT 1`
	if err := dbtx.GetContext(ctx, &r, q, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rule for %s: %w", category, err)
	}
	return &r, nil
}

// GetRequirementsByCategory returns the category's requirement rows in load order.
// When a required accessory appears more than once, only its first row is kept.
func GetRequirementsByCategory(ctx context.Context, dbtx DBTX, category string) ([]model.Requirement, error) {
	var rows []model.Requirement
	const q = `
		SELECT category, required_accessory, quantity_multiplier, position
		FROM requirements
		WHERE category = ?
		ORDER BY position`
	if err := dbtx.SelectContext(ctx, &rows, q, category); err != nil {
		return nil, fmt.Errorf("failed to get requirements for %s: %w", category, err)
	}

	seen := make(map[string]bool, len(rows))
	reqs := make([]model.Requirement, 0, len(rows))
	for _, r := range rows {
		if seen[r.RequiredAccessory] {
			continue
		}
		seen[r.RequiredAccessory] = true
		reqs = append(reqs, r)
	}
	return reqs, nil
}
