package database

import (
	"context"

	"github.com/jmoiron/sqlx"

	"quoter/apperr"
	"quoter/model"
)

// Store is the read side of the inventory cache. Each call checks out its own
// connection and returns it before the call ends.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) withConn(ctx context.Context, op string, fn func(conn *sqlx.Conn) error) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return apperr.Wrap(apperr.CodeDataAccess, err, "acquire connection for "+op)
	}
	defer conn.Close()

	if err := fn(conn); err != nil {
		return apperr.Wrap(apperr.CodeDataAccess, err, op)
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var p *model.Product
	err := s.withConn(ctx, "get product", func(conn *sqlx.Conn) error {
		var err error
		p, err = GetProductByID(ctx, conn, id)
		return err
	})
	return p, err
}

func (s *Store) GetRule(ctx context.Context, category string) (*model.ColorRule, error) {
	var r *model.ColorRule
	err := s.withConn(ctx, "get rule", func(conn *sqlx.Conn) error {
		var err error
		r, err = GetRuleByCategory(ctx, conn, category)
		return err
	})
	return r, err
}

// GetRequirements returns the category's requirements, each with the products of the given
// color that can fill it. Requirements with no matching product are still returned.
func (s *Store) GetRequirements(ctx context.Context, category, color string) ([]model.RequirementMatch, error) {
	var matches []model.RequirementMatch
	err := s.withConn(ctx, "get requirements", func(conn *sqlx.Conn) error {
		reqs, err := GetRequirementsByCategory(ctx, conn, category)
		if err != nil {
			return err
		}
		matches = make([]model.RequirementMatch, 0, len(reqs))
		for _, r := range reqs {
			products, err := FindAccessoryProducts(ctx, conn, category, r.RequiredAccessory, color)
			if err != nil {
				return err
			}
			matches = append(matches, model.RequirementMatch{Requirement: r, Products: products})
		}
		return nil
	})
	return matches, err
}

func (s *Store) ListProducts(ctx context.Context, heroOnly bool) ([]model.Product, error) {
	var products []model.Product
	err := s.withConn(ctx, "list products", func(conn *sqlx.Conn) error {
		var err error
		products, err = ListProducts(ctx, conn, heroOnly)
		return err
	})
	return products, err
}
