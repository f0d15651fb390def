package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var _ Store = (*PgStore)(nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of Store using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const productColumns = `id, name, price, original_price, category, categories, tags, stock, in_stock,
	image, description, weight, rating, reviews, created_at, updated_at`

func (p *PgStore) FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, adminerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}
	return product, nil
}

func (p *PgStore) FindProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := p.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer rows.Close()

	list := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		list = append(list, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return list, nil
}

func (p *PgStore) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	row := p.db.QueryRow(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+productColumns,
		product.ID, product.Name, product.Price, nullDecimal(product.OriginalPrice), string(product.Category),
		categoryStrings(product.Categories), nonNil(product.Tags), product.Stock, product.InStock,
		product.Image, product.Description, product.Weight, product.Rating, product.Reviews,
		product.CreatedAt, product.UpdatedAt,
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (p *PgStore) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	row := p.db.QueryRow(ctx, `
		UPDATE products SET
			name = $2, price = $3, original_price = $4, category = $5, categories = $6, tags = $7,
			stock = $8, in_stock = $9, image = $10, description = $11, weight = $12, rating = $13,
			reviews = $14, updated_at = $15
		WHERE id = $1
		RETURNING `+productColumns,
		product.ID, product.Name, product.Price, nullDecimal(product.OriginalPrice), string(product.Category),
		categoryStrings(product.Categories), nonNil(product.Tags), product.Stock, product.InStock,
		product.Image, product.Description, product.Weight, product.Rating, product.Reviews,
		product.UpdatedAt,
	)
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, adminerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	return updated, nil
}

func (p *PgStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return adminerrors.ErrProductNotFound
	}
	return nil
}

const orderColumns = `id, customer_name, customer_email, customer_phone, shipping_address, payment_method,
	payment_status, items, total_amount, status, created_at, updated_at`

func (p *PgStore) FindOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return findOrder(ctx, p.db, id, false)
}

func (p *PgStore) FindOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := p.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	list := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		list = append(list, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return list, nil
}

func (p *PgStore) CreateOrder(ctx context.Context, o model.Order) (*model.Order, error) {
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}
	items, err := json.Marshal(nonNil(o.Items))
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	row := p.db.QueryRow(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+orderColumns,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, address, o.PaymentMethod,
		string(o.PaymentStatus), items, o.TotalAmount, string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return created, nil
}

func (p *PgStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		// lock the row so concurrent status changes apply one after another
		if _, err := findOrder(ctx, tx, id, true); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, `
			UPDATE orders SET status = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+orderColumns,
			id, string(status), time.Now().UTC().Truncate(time.Microsecond),
		)
		o, err := scanOrder(row)
		if err != nil {
			return fmt.Errorf("failed to update order %s: %w", id, err)
		}
		updated = o
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func findOrder(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, adminerrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", id, err)
	}
	return o, nil
}

const reportColumns = `id, name, type, range_start, range_end, generated_at, data`

func (p *PgStore) FindReportByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	r, err := scanReport(p.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, adminerrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report %s: %w", id, err)
	}
	return r, nil
}

func (p *PgStore) FindReports(ctx context.Context) ([]model.Report, error) {
	rows, err := p.db.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}
	defer rows.Close()

	list := make([]model.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		list = append(list, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return list, nil
}

func (p *PgStore) CreateReport(ctx context.Context, r model.Report) (*model.Report, error) {
	data, err := json.Marshal(r.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report data: %w", err)
	}
	row := p.db.QueryRow(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+reportColumns,
		r.ID, r.Name, string(r.Type), r.DateRange.Start, r.DateRange.End, r.GeneratedAt, data,
	)
	created, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return created, nil
}

func (p *PgStore) DeleteReport(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return adminerrors.ErrReportNotFound
	}
	return nil
}

func (p *PgStore) GetSettings(ctx context.Context) (*model.SiteSettings, error) {
	var raw []byte
	err := p.db.QueryRow(ctx, `SELECT data FROM site_settings WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			d := model.DefaultSiteSettings()
			return &d, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	var s model.SiteSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

func (p *PgStore) SaveSettings(ctx context.Context, s model.SiteSettings) (*model.SiteSettings, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO site_settings (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &s, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return adminerrors.ErrTransactionBegin
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return adminerrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return adminerrors.ErrTransactionCommit
	}

	return nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p          model.Product
		original   decimal.NullDecimal
		category   string
		categories []string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Price, &original, &category, &categories, &p.Tags, &p.Stock,
		&p.InStock, &p.Image, &p.Description, &p.Weight, &p.Rating, &p.Reviews, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if original.Valid {
		p.OriginalPrice = &original.Decimal
	}
	p.Category = model.Category(category)
	if len(categories) > 0 {
		p.Categories = make([]model.Category, len(categories))
		for i, c := range categories {
			p.Categories[i] = model.Category(c)
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o             model.Order
		address       []byte
		items         []byte
		paymentStatus string
		status        string
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &address, &o.PaymentMethod,
		&paymentStatus, &items, &o.TotalAmount, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to decode shipping address: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	o.PaymentStatus = model.PaymentStatus(paymentStatus)
	o.Status = model.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return &o, nil
}

func scanReport(row pgx.Row) (*model.Report, error) {
	var (
		r    model.Report
		kind string
		data []byte
	)
	err := row.Scan(&r.ID, &r.Name, &kind, &r.DateRange.Start, &r.DateRange.End, &r.GeneratedAt, &data)
	if err != nil {
		return nil, err
	}
	r.Type = model.ReportType(kind)
	r.Data, err = model.DecodeReportData(r.Type, data)
	if err != nil {
		return nil, err
	}
	r.DateRange.Start = r.DateRange.Start.UTC()
	r.DateRange.End = r.DateRange.End.UTC()
	r.GeneratedAt = r.GeneratedAt.UTC()
	return &r, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func categoryStrings(categories []model.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
