package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
	"github.com/trackwise/trackwise-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, item_name, category, quantity, cost_price, created_at, updated_at`

// ProductRepo implements the read-only ProductRepository port over
// PostgreSQL. Works with a pool or a transaction (Querier).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for products.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetForCompany fetches one product scoped to the company; rows of other
// tenants come back as nil.
func (r *ProductRepo) GetForCompany(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.ItemName, &p.Category, &p.Quantity, &p.CostPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByCompany pages through the company's products, newest first.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	query, args := buildProductQuery(`SELECT `+productColumns+` FROM products`, companyID, filter)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	return r.queryProducts(ctx, query, args)
}

// AllByCompany returns every matching product; the report aggregator sums
// values in application code.
func (r *ProductRepo) AllByCompany(ctx context.Context, companyID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	query, args := buildProductQuery(`SELECT `+productColumns+` FROM products`, companyID, filter)
	query += ` ORDER BY item_name ASC`
	return r.queryProducts(ctx, query, args)
}

// CountByCompany counts the company's products under the same filter.
func (r *ProductRepo) CountByCompany(ctx context.Context, companyID string, filter repository.ProductFilter) (int, error) {
	query, args := buildProductQuery(`SELECT COUNT(*) FROM products`, companyID, filter)
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args []any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.ItemName, &p.Category, &p.Quantity, &p.CostPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func buildProductQuery(base, companyID string, filter repository.ProductFilter) (string, []any) {
	clauses := []string{`company_id = $1`}
	args := []any{companyID}

	if filter.Category != "" {
		clauses = append(clauses, `category = $`+strconv.Itoa(len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.From != nil {
		clauses = append(clauses, `created_at >= $`+strconv.Itoa(len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		clauses = append(clauses, `created_at <= $`+strconv.Itoa(len(args)+1))
		args = append(args, *filter.To)
	}
	return base + ` WHERE ` + strings.Join(clauses, ` AND `), args
}
