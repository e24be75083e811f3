package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	domainCriteria "sales/src/shared/domain/criteria"
	sqlCriteria "sales/src/shared/infrastructure/criteria"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation es el código de Postgres para violación de unique constraint
const uniqueViolation = "23505"

// SalePostgresRepository implementa SaleRepository usando PostgreSQL
// El aggregate se persiste completo (venta + items) dentro de una transacción
type SalePostgresRepository struct {
	db        *sql.DB
	converter *sqlCriteria.SQLCriteriaConverter
}

// NewSalePostgresRepository crea una nueva instancia del repositorio
func NewSalePostgresRepository(db *sql.DB) port.SaleRepository {
	return &SalePostgresRepository{
		db:        db,
		converter: sqlCriteria.NewSQLCriteriaConverter(),
	}
}

// Create persiste una venta nueva con sus items (atomically)
// El unique index de number convierte la carrera de generación de números
// en entity.ErrDuplicateSaleNumber para que el caller reintente
func (r *SalePostgresRepository) Create(ctx context.Context, sale *entity.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Insertar venta (aggregate root)
	querySale := `
		INSERT INTO sales (
			id, number, date, branch_name, customer_id,
			total_amount, is_cancelled, cancellation_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err = tx.ExecContext(ctx, querySale,
		sale.ID,
		sale.Number,
		sale.Date,
		sale.BranchName,
		sale.CustomerID,
		sale.TotalAmount,
		sale.IsCancelled,
		sale.CancellationDate, // NULL permitido
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrDuplicateSaleNumber
		}
		return fmt.Errorf("error creating sale: %w", err)
	}

	// 2. Insertar items (entities dentro del aggregate)
	if err := upsertItems(ctx, tx, sale.Items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// upsertItems inserta o actualiza los items de una venta dentro de la transacción
func upsertItems(ctx context.Context, tx *sql.Tx, items []entity.SaleItem) error {
	queryItem := `
		INSERT INTO sale_items (
			id, sale_id, product_name, quantity, unit_price,
			discount, total_amount, is_cancelled, cancellation_date, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			discount = EXCLUDED.discount,
			total_amount = EXCLUDED.total_amount,
			is_cancelled = EXCLUDED.is_cancelled,
			cancellation_date = EXCLUDED.cancellation_date
	`

	for _, item := range items {
		_, err := tx.ExecContext(ctx, queryItem,
			item.ID,
			item.SaleID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
			item.TotalAmount,
			item.IsCancelled,
			item.CancellationDate,
		)

		if err != nil {
			return fmt.Errorf("error saving sale_item %s: %w", item.ID, err)
		}
	}

	return nil
}

// GetByID retorna la venta sin items
func (r *SalePostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	query := `
		SELECT
			id, number, date, branch_name, customer_id,
			total_amount, is_cancelled, cancellation_date
		FROM sales
		WHERE id = $1
	`

	sale := &entity.Sale{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sale.ID,
		&sale.Number,
		&sale.Date,
		&sale.BranchName,
		&sale.CustomerID,
		&sale.TotalAmount,
		&sale.IsCancelled,
		&sale.CancellationDate,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying sale: %w", err)
	}

	return sale, nil
}

// GetByIDWithItems retorna la venta con todos sus items (incluso cancelados)
func (r *SalePostgresRepository) GetByIDWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

// loadItems carga los items de una venta en orden de inserción
func (r *SalePostgresRepository) loadItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	query := `
		SELECT
			id, sale_id, product_name, quantity, unit_price,
			discount, total_amount, is_cancelled, cancellation_date
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("error querying sale_items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem

	for rows.Next() {
		item := entity.SaleItem{}
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Discount,
			&item.TotalAmount,
			&item.IsCancelled,
			&item.CancellationDate,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sale_item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale_items: %w", err)
	}

	return items, nil
}

// List retorna una página de ventas ordenadas por fecha descendente y el total
func (r *SalePostgresRepository) List(ctx context.Context, filters port.ListSalesFilters) ([]*entity.Sale, int, error) {
	crit := domainCriteria.NewCriteria().
		WithOrder("date", domainCriteria.OrderDesc).
		WithPagination(filters.Page, filters.PageSize)

	if filters.StartDate != nil {
		crit.Filters.Add("date", domainCriteria.OperatorGreaterOrEq, *filters.StartDate)
	}
	if filters.EndDate != nil {
		crit.Filters.Add("date", domainCriteria.OperatorLessOrEq, *filters.EndDate)
	}
	if filters.CustomerID != nil {
		crit.Filters.Add("customer_id", domainCriteria.OperatorEqual, *filters.CustomerID)
	}

	// 1. Total de registros para la paginación
	countQuery, countParams := r.converter.ToCountSQL("SELECT COUNT(*) FROM sales", crit)

	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, countParams...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("error counting sales: %w", err)
	}

	// 2. Página de ventas
	baseQuery := `
		SELECT
			id, number, date, branch_name, customer_id,
			total_amount, is_cancelled, cancellation_date
		FROM sales
	`
	query, params := r.converter.ToSelectSQL(baseQuery, crit)

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale

	for rows.Next() {
		sale := &entity.Sale{}
		err := rows.Scan(
			&sale.ID,
			&sale.Number,
			&sale.Date,
			&sale.BranchName,
			&sale.CustomerID,
			&sale.TotalAmount,
			&sale.IsCancelled,
			&sale.CancellationDate,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, totalCount, nil
}

// Update persiste el estado actual del aggregate (venta + items)
func (r *SalePostgresRepository) Update(ctx context.Context, sale *entity.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE sales SET
			date = $2,
			branch_name = $3,
			customer_id = $4,
			total_amount = $5,
			is_cancelled = $6,
			cancellation_date = $7
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query,
		sale.ID,
		sale.Date,
		sale.BranchName,
		sale.CustomerID,
		sale.TotalAmount,
		sale.IsCancelled,
		sale.CancellationDate,
	)
	if err != nil {
		return fmt.Errorf("error updating sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}
	if affected == 0 {
		return entity.ErrSaleNotFound
	}

	if err := upsertItems(ctx, tx, sale.Items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// Delete elimina la venta y sus items
func (r *SalePostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting sale_items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return entity.ErrSaleNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// GetLastSaleNumberByDatePrefix retorna el mayor number emitido para un día
func (r *SalePostgresRepository) GetLastSaleNumberByDatePrefix(ctx context.Context, datePrefix string) (string, error) {
	query := `
		SELECT number
		FROM sales
		WHERE number LIKE $1
		ORDER BY number DESC
		LIMIT 1
	`

	var number string
	err := r.db.QueryRowContext(ctx, query, "SALE-"+datePrefix+"-%").Scan(&number)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error querying last sale number: %w", err)
	}

	return number, nil
}
