package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"quoter/apperr"
	"quoter/model"
)

// ProductSource is the part of the inventory store the inspector reads.
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// Report is the stock position of one product against a needed quantity.
type Report struct {
	ProductID   string
	OnHand      int64
	Needed      decimal.Decimal
	Shortfall   decimal.Decimal
	Incoming    int64
	RestockDate string
}

// Short reports whether on-hand stock does not cover the needed quantity.
func (r Report) Short() bool {
	return r.Shortfall.IsPositive()
}

type Inspector struct {
	store ProductSource
}

func NewInspector(store ProductSource) *Inspector {
	return &Inspector{store: store}
}

// Check compares a product's on-hand stock with needed. It never changes stock.
func (in *Inspector) Check(ctx context.Context, productID string, needed decimal.Decimal) (Report, error) {
	if needed.IsNegative() {
		return Report{}, apperr.Newf(apperr.CodeInvalidQuantity, "needed quantity %s is negative", needed)
	}
	p, err := in.store.GetProduct(ctx, productID)
	if err != nil {
		return Report{}, err
	}
	if p == nil {
		return Report{}, apperr.Newf(apperr.CodeProductNotFound, "product with id %s not found", productID)
	}
	return Evaluate(*p, needed), nil
}

// Evaluate computes the report for an already loaded product.
func Evaluate(p model.Product, needed decimal.Decimal) Report {
	r := Report{
		ProductID: p.ID,
		OnHand:    p.Inventory,
		Needed:    needed,
		Shortfall: decimal.Max(decimal.Zero, needed.Sub(decimal.NewFromInt(p.Inventory))),
		Incoming:  p.Incoming,
	}
	if p.RestockDate.Valid {
		r.RestockDate = p.RestockDate.String
	}
	return r
}
