package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/multierr"

	"quoter/database"
	"quoter/logger"
	"quoter/model"
)

// Sources names the three tabular inputs. Each may be .csv or .xlsx.
type Sources struct {
	Products     string
	Requirements string
	Rules        string
}

// Result reports what a Load did. RowErrors combines every skipped row.
type Result struct {
	Products     int
	Requirements int
	Rules        int
	NotFound     []string
	RowErrors    error
}

type Loader struct {
	db       *sqlx.DB
	log      *logger.Logger
	encoding string
}

func New(db *sqlx.DB, log *logger.Logger, encoding string) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{db: db, log: log, encoding: encoding}
}

type dataset struct {
	products     []model.Product
	requirements []model.Requirement
	rules        []model.ColorRule
}

// Load reads every source and replaces the matching tables wholesale in one transaction.
// A source file that does not exist is skipped and its table left untouched.
func (l *Loader) Load(ctx context.Context, src Sources) (*Result, error) {
	res := &Result{}
	var data dataset

	present := func(path string) bool {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			l.log.Warn(l.log.With(ctx, "source", path), "source not found, skipping")
			res.NotFound = append(res.NotFound, path)
			return false
		}
		return true
	}

	loadProducts := present(src.Products)
	if loadProducts {
		t, err := l.open(src.Products, productColumns)
		if err != nil {
			return nil, err
		}
		data.products, res.RowErrors = l.readProducts(ctx, t, res.RowErrors)
	}
	loadRequirements := present(src.Requirements)
	if loadRequirements {
		t, err := l.open(src.Requirements, requirementColumns)
		if err != nil {
			return nil, err
		}
		data.requirements, res.RowErrors = l.readRequirements(ctx, t, res.RowErrors)
	}
	loadRules := present(src.Rules)
	if loadRules {
		t, err := l.open(src.Rules, ruleColumns)
		if err != nil {
			return nil, err
		}
		data.rules, res.RowErrors = l.readRules(ctx, t, res.RowErrors)
	}

	err := l.replace(ctx, func(tx *sqlx.Tx) error {
		if loadProducts {
			if err := replaceProducts(ctx, tx, data.products); err != nil {
				return err
			}
		}
		if loadRequirements {
			if err := replaceRequirements(ctx, tx, data.requirements); err != nil {
				return err
			}
		}
		if loadRules {
			if err := replaceRules(ctx, tx, data.rules); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Products = len(data.products)
	res.Requirements = len(data.requirements)
	res.Rules = len(data.rules)
	l.log.Synced(ctx, res.Products, res.Requirements, res.Rules, len(multierr.Errors(res.RowErrors)))
	return res, nil
}

func (l *Loader) open(path string, columns []string) (*table, error) {
	t, err := readTable(path, l.encoding)
	if err != nil {
		return nil, err
	}
	if err := t.require(columns...); err != nil {
		return nil, err
	}
	return t, nil
}

func (l *Loader) skip(ctx context.Context, errs error, path string, line int, err error) error {
	rowErr := fmt.Errorf("%s line %d: %w", path, line, err)
	l.log.RowSkipped(ctx, path, line, err)
	return multierr.Append(errs, rowErr)
}

// readProducts keeps the first row for each id.
func (l *Loader) readProducts(ctx context.Context, t *table, errs error) ([]model.Product, error) {
	seen := make(map[string]bool, len(t.rows))
	products := make([]model.Product, 0, len(t.rows))
	for i, row := range t.rows {
		p, err := parseProduct(t, row)
		if err != nil {
			errs = l.skip(ctx, errs, t.path, t.lines[i], err)
			continue
		}
		if seen[p.ID] {
			errs = l.skip(ctx, errs, t.path, t.lines[i], fmt.Errorf("duplicate product id %s", p.ID))
			continue
		}
		seen[p.ID] = true
		products = append(products, p)
	}
	return products, errs
}

func (l *Loader) readRequirements(ctx context.Context, t *table, errs error) ([]model.Requirement, error) {
	reqs := make([]model.Requirement, 0, len(t.rows))
	for i, row := range t.rows {
		r, err := parseRequirement(t, row, i)
		if err != nil {
			errs = l.skip(ctx, errs, t.path, t.lines[i], err)
			continue
		}
		reqs = append(reqs, r)
	}
	return reqs, errs
}

func (l *Loader) readRules(ctx context.Context, t *table, errs error) ([]model.ColorRule, error) {
	rules := make([]model.ColorRule, 0, len(t.rows))
	for i, row := range t.rows {
		r, err := parseRule(t, row, i)
		if err != nil {
			errs = l.skip(ctx, errs, t.path, t.lines[i], err)
			continue
		}
		rules = append(rules, r)
	}
	return rules, errs
}

func (l *Loader) replace(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			l.log.Error(ctx, "rolling back source import", err)
			tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				err = fmt.Errorf("failed to commit source import: %w", err)
			}
		}
	}()

	return fn(tx)
}

func replaceProducts(ctx context.Context, tx *sqlx.Tx, products []model.Product) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+database.TableProducts); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO products (id, category, sub_category, name, color, unit, price, inventory, incoming, restock_date, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for products: %w", err)
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Category, p.SubCategory, p.Name, p.Color, p.Unit,
			p.Price.String(), p.Inventory, p.Incoming, p.RestockDate, i); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}
	return nil
}

func replaceRequirements(ctx context.Context, tx *sqlx.Tx, reqs []model.Requirement) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+database.TableRequirements); err != nil {
		return fmt.Errorf("failed to clear requirements: %w", err)
	}
	for _, r := range reqs {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO requirements (category, required_accessory, quantity_multiplier, position)
			VALUES (:category, :required_accessory, :quantity_multiplier, :position)`, r); err != nil {
			return fmt.Errorf("failed to insert requirement %s/%s: %w", r.Category, r.RequiredAccessory, err)
		}
	}
	return nil
}

func replaceRules(ctx context.Context, tx *sqlx.Tx, rules []model.ColorRule) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+database.TableRules); err != nil {
		return fmt.Errorf("failed to clear rules: %w", err)
	}
	for _, r := range rules {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO rules (category, color_matching_type, position)
			VALUES (:category, :color_matching_type, :position)`, r); err != nil {
			return fmt.Errorf("failed to insert rule for %s: %w", r.Category, err)
		}
	}
	return nil
}
