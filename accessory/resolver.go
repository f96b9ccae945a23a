package accessory

import (
	"context"

	"quoter/model"
)

// RequirementSource is the part of the inventory store the resolver reads.
type RequirementSource interface {
	GetRequirements(ctx context.Context, category, color string) ([]model.RequirementMatch, error)
}

type Resolver struct {
	store RequirementSource
}

func NewResolver(store RequirementSource) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the accessory products a hero of the given category needs in the given color,
// ordered by requirement row and then by product load order. An empty result is not an error.
func (r *Resolver) Resolve(ctx context.Context, category, color string) ([]model.Accessory, error) {
	matches, err := r.store.GetRequirements(ctx, category, color)
	if err != nil {
		return nil, err
	}

	accessories := make([]model.Accessory, 0, len(matches))
	for _, m := range matches {
		for _, p := range m.Products {
			if p.IsHero() {
				continue
			}
			accessories = append(accessories, model.Accessory{Product: p, Multiplier: m.Multiplier})
		}
	}
	return accessories, nil
}
