package accessory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoter/model"
)

type fixedSource struct {
	matches []model.RequirementMatch
	err     error
	gotCat  string
	gotCol  string
}

func (f *fixedSource) GetRequirements(_ context.Context, category, color string) ([]model.RequirementMatch, error) {
	f.gotCat, f.gotCol = category, color
	return f.matches, f.err
}

func req(sub string, m float64, products ...model.Product) model.RequirementMatch {
	return model.RequirementMatch{
		Requirement: model.Requirement{Category: "Siding", RequiredAccessory: sub, Multiplier: m},
		Products:    products,
	}
}

func TestResolveKeepsOrderAndMultipliers(t *testing.T) {
	src := &fixedSource{matches: []model.RequirementMatch{
		req("Trim", 2, model.Product{ID: "T1", SubCategory: "Trim"}, model.Product{ID: "T2", SubCategory: "Trim"}),
		req("Starter", 2),
		req("Nails", 0.2, model.Product{ID: "N1", SubCategory: "Nails"}),
	}}

	got, err := NewResolver(src).Resolve(context.Background(), "Siding", "White")
	require.NoError(t, err)

	assert.Equal(t, "Siding", src.gotCat)
	assert.Equal(t, "White", src.gotCol)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"T1", "T2", "N1"}, []string{got[0].Product.ID, got[1].Product.ID, got[2].Product.ID})
	assert.Equal(t, 2.0, got[0].Multiplier)
	assert.Equal(t, 0.2, got[2].Multiplier)
}

func TestResolveNoMatchesIsEmpty(t *testing.T) {
	got, err := NewResolver(&fixedSource{}).Resolve(context.Background(), "Siding", "Red")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveSkipsHeroRows(t *testing.T) {
	src := &fixedSource{matches: []model.RequirementMatch{
		req("Hero", 1, model.Product{ID: "P1", SubCategory: model.HeroSubCategory}),
	}}
	got, err := NewResolver(src).Resolve(context.Background(), "Siding", "White")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolvePropagatesError(t *testing.T) {
	_, err := NewResolver(&fixedSource{err: errors.New("boom")}).Resolve(context.Background(), "Siding", "White")
	assert.Error(t, err)
}
