package quote

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"quoter/accessory"
	"quoter/apperr"
	"quoter/logger"
	"quoter/model"
	"quoter/stock"
)

// Store is the read-only inventory the engine quotes against.
type Store interface {
	stock.ProductSource
	accessory.RequirementSource
	GetRule(ctx context.Context, category string) (*model.ColorRule, error)
}

// ColorPrompter asks the operator about accessory color when a category's rule is Optional.
type ColorPrompter interface {
	ConfirmMatch(ctx context.Context, hero model.Product) (bool, error)
	OverrideColor(ctx context.Context, hero model.Product) (string, error)
}

type Engine struct {
	store    Store
	stock    *stock.Inspector
	resolver *accessory.Resolver
	prompter ColorPrompter
	log      *logger.Logger
	newRef   func() string
}

// NewEngine wires an engine. A nil prompter keeps accessories in the hero color.
func NewEngine(store Store, prompter ColorPrompter, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		store:    store,
		stock:    stock.NewInspector(store),
		resolver: accessory.NewResolver(store),
		prompter: prompter,
		log:      log,
		newRef:   uuid.NewString,
	}
}

// Generate builds a quote for quantity units of the product. Nothing is reserved or stored.
func (e *Engine) Generate(ctx context.Context, productID string, quantity float64) (*model.Quote, error) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return nil, apperr.Newf(apperr.CodeInvalidQuantity, "quantity must be a number greater than zero, got %v", quantity)
	}

	ref := e.newRef()
	ctx = e.log.With(ctx, "quote_ref", ref, "product_id", productID)

	product, err := e.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.Newf(apperr.CodeProductNotFound, "product with id %s not found", productID)
	}

	qty := decimal.NewFromFloat(quantity)
	subtotal := product.Price.Mul(qty)
	q := &model.Quote{
		Reference:      ref,
		Main:           model.MainLine{Product: *product, Quantity: quantity, Subtotal: subtotal},
		Accessories:    []model.AccessoryLine{},
		Subtotal:       subtotal,
		AccessoryTotal: decimal.Zero,
		GrandTotal:     subtotal,
		Warnings:       []model.StockWarning{},
	}

	report, err := e.stock.Check(ctx, product.ID, qty)
	if err != nil {
		return nil, err
	}
	if report.Short() {
		q.Warnings = append(q.Warnings, newWarning(*product, report, report.Needed.StringFixed(2)))
	}

	if !product.IsHero() {
		e.log.Debug(ctx, "quoted non-hero item without accessories")
		return q, nil
	}

	color, err := e.accessoryColor(ctx, *product)
	if err != nil {
		return nil, err
	}
	q.AccessoryColor = color

	accessories, err := e.resolver.Resolve(ctx, product.Category, color)
	if err != nil {
		return nil, err
	}

	for _, a := range accessories {
		needed := RequiredUnits(qty, a.Multiplier)
		cost := a.Product.Price.Mul(needed)

		report, err := e.stock.Check(ctx, a.Product.ID, needed)
		if err != nil {
			return nil, err
		}
		if report.Short() {
			q.Warnings = append(q.Warnings, newWarning(a.Product, report, needed.String()))
		}

		q.Accessories = append(q.Accessories, model.AccessoryLine{
			Product:    a.Product,
			Multiplier: a.Multiplier,
			Quantity:   needed.IntPart(),
			Cost:       cost,
		})
		q.AccessoryTotal = q.AccessoryTotal.Add(cost)
	}
	q.GrandTotal = q.Subtotal.Add(q.AccessoryTotal)

	e.log.Debug(e.log.With(ctx,
		"accessories", len(q.Accessories),
		"warnings", len(q.Warnings),
		"grand_total", q.GrandTotal.StringFixed(2),
	), "quote generated")
	return q, nil
}

// RequiredUnits is the whole number of accessory units for a hero quantity, rounded up.
func RequiredUnits(quantity decimal.Decimal, multiplier float64) decimal.Decimal {
	return quantity.Mul(decimal.NewFromFloat(multiplier)).Ceil()
}

func (e *Engine) accessoryColor(ctx context.Context, hero model.Product) (string, error) {
	rule, err := e.store.GetRule(ctx, hero.Category)
	if err != nil {
		return "", err
	}
	if rule == nil || rule.Mode != model.MatchOptional || e.prompter == nil {
		return hero.Color, nil
	}

	match, err := e.prompter.ConfirmMatch(ctx, hero)
	if err != nil {
		return "", err
	}
	if match {
		return hero.Color, nil
	}

	raw, err := e.prompter.OverrideColor(ctx, hero)
	if err != nil {
		return "", err
	}
	color := NormalizeColor(raw)
	if color == "" {
		return "", apperr.New(apperr.CodeInvalidInput, "accessory color must not be empty")
	}
	e.log.Debug(e.log.With(ctx, "accessory_color", color), "operator overrode accessory color")
	return color, nil
}

// NormalizeColor title-cases an operator-entered color, so "light GRAY" becomes "Light Gray".
func NormalizeColor(s string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

func newWarning(p model.Product, r stock.Report, needed string) model.StockWarning {
	restock := "no restock date scheduled"
	if r.RestockDate != "" {
		restock = "restock date " + r.RestockDate
	}
	return model.StockWarning{
		ProductID:   p.ID,
		Name:        p.Name,
		Color:       p.Color,
		OnHand:      r.OnHand,
		Needed:      r.Needed,
		Shortfall:   r.Shortfall,
		Incoming:    r.Incoming,
		RestockDate: r.RestockDate,
		Message: fmt.Sprintf("LOW STOCK: %s (%s) has %d on hand, %s needed. Incoming: %d, %s.",
			p.Name, p.Color, r.OnHand, needed, r.Incoming, restock),
	}
}
