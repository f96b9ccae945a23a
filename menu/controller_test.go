package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoter/apperr"
	"quoter/model"
)

type stubQuotes struct {
	quote  *model.Quote
	err    error
	gotID  string
	gotQty float64
	calls  int
}

func (s *stubQuotes) Generate(_ context.Context, id string, qty float64) (*model.Quote, error) {
	s.calls++
	s.gotID, s.gotQty = id, qty
	return s.quote, s.err
}

type stubCatalog struct {
	products []model.Product
	err      error
	heroOnly []bool
}

func (s *stubCatalog) ListProducts(_ context.Context, heroOnly bool) ([]model.Product, error) {
	s.heroOnly = append(s.heroOnly, heroOnly)
	return s.products, s.err
}

func run(t *testing.T, input string, quotes *stubQuotes, catalog *stubCatalog) string {
	t.Helper()
	var out bytes.Buffer
	c := NewController(NewConsole(strings.NewReader(input), &out), quotes, catalog, nil)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func simpleQuote() *model.Quote {
	p := model.Product{ID: "P1", Name: "Panel-A", Color: "White", Unit: "squares"}
	return &model.Quote{
		Main:       model.MainLine{Product: p, Quantity: 2, Subtotal: decimal.NewFromInt(200)},
		Subtotal:   decimal.NewFromInt(200),
		GrandTotal: decimal.NewFromInt(200),
	}
}

func TestGenerateQuoteFlow(t *testing.T) {
	quotes := &stubQuotes{quote: simpleQuote()}
	out := run(t, "01\nP1\n2\n99\n", quotes, &stubCatalog{})

	assert.Equal(t, "P1", quotes.gotID)
	assert.Equal(t, 2.0, quotes.gotQty)
	assert.Contains(t, out, "BUILDING PRODUCT QUOTE")
	assert.Contains(t, out, "Total Incl. Accessories: $200.00")
	assert.Contains(t, out, "Exiting...")
}

func TestNonNumericQuantity(t *testing.T) {
	quotes := &stubQuotes{}
	out := run(t, "01\nP1\nlots\n99\n", quotes, &stubCatalog{})

	assert.Zero(t, quotes.calls)
	assert.Contains(t, out, `Invalid quantity: "lots" is not a number.`)
}

func TestUnknownProductKeepsMenuUsable(t *testing.T) {
	quotes := &stubQuotes{err: apperr.New(apperr.CodeProductNotFound, "product with id X9 not found")}
	catalog := &stubCatalog{products: []model.Product{{ID: "1", Category: "Siding", Name: "Panel-A", Color: "White"}}}
	out := run(t, "01\nX9\n1\n03\n99\n", quotes, catalog)

	assert.Contains(t, out, "Error: product with id X9 not found.")
	assert.NotContains(t, out, "BUILDING PRODUCT QUOTE")
	assert.Contains(t, out, "Panel-A")
	assert.Equal(t, []bool{false}, catalog.heroOnly)
}

func TestDataAccessFaultIsReported(t *testing.T) {
	quotes := &stubQuotes{err: apperr.Wrap(apperr.CodeDataAccess, errors.New("no such table: products"), "get product")}
	out := run(t, "01\nP1\n1\n99\n", quotes, &stubCatalog{})

	assert.Contains(t, out, "Error: could not complete the request")
	assert.Contains(t, out, "no such table: products")
	assert.Contains(t, out, "Exiting...")
}

func TestListHeroProducts(t *testing.T) {
	catalog := &stubCatalog{products: []model.Product{{ID: "1", Category: "Siding", Name: "Panel-A", Color: "White"}}}
	out := run(t, "02\n99\n", &stubQuotes{}, catalog)

	assert.Equal(t, []bool{true}, catalog.heroOnly)
	assert.Contains(t, out, "ID | Category | Name | Color")
}

func TestListFaultIsReported(t *testing.T) {
	catalog := &stubCatalog{err: apperr.Wrap(apperr.CodeDataAccess, errors.New("disk I/O error"), "list products")}
	out := run(t, "03\n99\n", &stubQuotes{}, catalog)
	assert.Contains(t, out, "disk I/O error")
}

func TestInvalidChoiceRedisplaysMenu(t *testing.T) {
	out := run(t, "42\n99\n", &stubQuotes{}, &stubCatalog{})

	assert.Contains(t, out, "Invalid choice, try again.")
	assert.Equal(t, 2, strings.Count(out, "----- Main Menu -----"))
}

func TestEndOfInputExits(t *testing.T) {
	out := run(t, "", &stubQuotes{}, &stubCatalog{})
	assert.Contains(t, out, "Exiting...")
}

func TestEndOfInputDuringQuote(t *testing.T) {
	quotes := &stubQuotes{}
	out := run(t, "01\nP1\n", quotes, &stubCatalog{})

	assert.Zero(t, quotes.calls)
	assert.Contains(t, out, "Exiting...")
}

func TestEOFFromPrompterEndsSession(t *testing.T) {
	quotes := &stubQuotes{err: io.EOF}
	out := run(t, "01\nP1\n1\n", quotes, &stubCatalog{})
	assert.Contains(t, out, "Exiting...")
}

func TestConsoleConfirmMatch(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("maybe\nN\n"), &out)

	match, err := c.ConfirmMatch(context.Background(), model.Product{Name: "Panel-A", Color: "White"})
	require.NoError(t, err)
	assert.False(t, match)
	assert.Contains(t, out.String(), "Please answer y or n.")
	assert.Contains(t, out.String(), "(White)")
}

func TestConsoleOverrideColor(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("\n  red\n"), &out)

	color, err := c.OverrideColor(context.Background(), model.Product{})
	require.NoError(t, err)
	assert.Equal(t, "red", color)
	assert.Contains(t, out.String(), "Color cannot be empty.")
}

func TestConsolePromptLastLineWithoutNewline(t *testing.T) {
	c := NewConsole(strings.NewReader("99"), io.Discard)
	line, err := c.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "99", line)

	_, err = c.Prompt("> ")
	assert.ErrorIs(t, err, io.EOF)
}
