package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	models "github.com/inventory-catalog/api/internal/models"
)

const uniqueViolation = "23505"

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, unit, category, brand, stock, status, image) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, status, image FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, status, image FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Status, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByName(name string) (models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, status, image FROM products WHERE name = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Status, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) List(opts ListOptions) ([]models.Product, error) {
	// Sort and order were validated by NewListOptions; resolve through the
	// allow-list anyway so raw field values never reach the query text.
	col, ok := sortColumns[opts.Sort]
	if !ok {
		col = DefaultSort
	}
	dir := "ASC"
	if opts.Order == OrderDesc {
		dir = "DESC"
	}

	args := []any{}
	where := ""
	argIdx := 1
	if opts.Category != "" {
		where = fmt.Sprintf(" WHERE category = $%d", argIdx)
		args = append(args, opts.Category)
		argIdx++
	}

	// Trailing id tiebreak keeps the order deterministic for equal sort keys.
	query := fmt.Sprintf(
		`SELECT id, name, unit, category, brand, stock, status, image FROM products%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		where, col, dir, argIdx, argIdx+1)
	args = append(args, opts.Limit, opts.Offset())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresProductRepository) Search(name string) ([]models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, status, image FROM products WHERE name ILIKE $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, "%"+likeEscape(name)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Update replaces every mutable field of the product. The stock read, the
// history insert and the row write share one transaction so a concurrent
// reader never sees the new stock without its history entry.
func (r *PostgresProductRepository) Update(p models.Product, actor string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var oldStock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, p.ID).Scan(&oldStock)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("read stock: %w", err)
	}

	if oldStock != p.Stock {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date, user_info) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, oldStock, p.Stock, time.Now().UTC(), actor)
		if err != nil {
			return models.Product{}, fmt.Errorf("insert history: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET name = $1, unit = $2, category = $3, brand = $4, stock = $5, status = $6, image = $7 WHERE id = $8`,
		p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

// Delete is idempotent: removing an id that no longer exists is a success.
func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Status, &p.Image); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// likeEscape neutralizes LIKE metacharacters in user-supplied substrings.
func likeEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
