package menu

import (
	"context"
	"errors"
	"io"
	"strconv"

	"quoter/apperr"
	"quoter/logger"
	"quoter/model"
	"quoter/render"
)

type QuoteGenerator interface {
	Generate(ctx context.Context, productID string, quantity float64) (*model.Quote, error)
}

type Catalog interface {
	ListProducts(ctx context.Context, heroOnly bool) ([]model.Product, error)
}

// Controller runs the numeric-code main menu until the operator exits or input ends.
type Controller struct {
	console *Console
	quotes  QuoteGenerator
	catalog Catalog
	log     *logger.Logger
}

func NewController(console *Console, quotes QuoteGenerator, catalog Catalog, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{console: console, quotes: quotes, catalog: catalog, log: log}
}

func (c *Controller) showMenu() {
	c.console.Println(" ----- Main Menu -----")
	c.console.Println("01: Generate A Quote")
	c.console.Println("02: List Hero Products")
	c.console.Println("03: List All Products")
	c.console.Println("99: Exit")
}

func (c *Controller) Run(ctx context.Context) error {
	for {
		c.showMenu()
		choice, err := c.console.Prompt("\nEnter Selection: ")
		if err != nil {
			return c.finish(err)
		}

		switch choice {
		case "01", "1":
			err = c.generateQuote(ctx)
		case "02", "2":
			c.listProducts(ctx, true)
		case "03", "3":
			c.listProducts(ctx, false)
		case "99":
			c.console.Println("Exiting...")
			return nil
		default:
			c.console.Println("Invalid choice, try again.")
		}
		if err != nil {
			return c.finish(err)
		}
	}
}

// finish treats end of input as a normal exit.
func (c *Controller) finish(err error) error {
	if errors.Is(err, io.EOF) {
		c.console.Println("\nExiting...")
		return nil
	}
	return err
}

// generateQuote only returns errors that end the session, i.e. lost input.
func (c *Controller) generateQuote(ctx context.Context) error {
	id, err := c.console.Prompt("Enter Product ID: ")
	if err != nil {
		return err
	}
	raw, err := c.console.Prompt("Enter Quantity: ")
	if err != nil {
		return err
	}
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.report(ctx, apperr.Newf(apperr.CodeInvalidQuantity, "%q is not a number", raw))
		return nil
	}

	q, err := c.quotes.Generate(ctx, id, qty)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		c.report(ctx, err)
		return nil
	}
	return render.Quote(c.console.Writer(), q)
}

func (c *Controller) listProducts(ctx context.Context, heroOnly bool) {
	products, err := c.catalog.ListProducts(ctx, heroOnly)
	if err != nil {
		c.report(ctx, err)
		return
	}
	if err := render.Products(c.console.Writer(), products); err != nil {
		c.log.Error(ctx, "failed to write product list", err)
	}
}

// report shows err to the operator. Faults are also logged; input mistakes are not.
func (c *Controller) report(ctx context.Context, err error) {
	typed := apperr.As(err)
	if typed == nil {
		c.log.Error(ctx, "unexpected error", err)
		c.console.Printf("Error: %v\n", err)
		return
	}

	switch typed.Code() {
	case apperr.CodeProductNotFound:
		c.console.Printf("Error: %s.\n", typed.Message())
	case apperr.CodeInvalidQuantity:
		c.console.Printf("Invalid quantity: %s.\n", typed.Message())
	case apperr.CodeInvalidInput:
		c.console.Printf("Invalid input: %s.\n", typed.Message())
	default:
		c.log.Error(ctx, "operation aborted", err)
		c.console.Printf("Error: could not complete the request (%v).\n", err)
	}
}
