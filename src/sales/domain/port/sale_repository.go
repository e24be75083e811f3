package port

import (
	"context"
	"time"

	"sales/src/sales/domain/entity"

	"github.com/google/uuid"
)

// ListSalesFilters son los filtros opcionales del listado paginado de ventas
type ListSalesFilters struct {
	Page       int
	PageSize   int
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID *uuid.UUID
}

// SaleRepository define el contrato para persistir el aggregate Sale
type SaleRepository interface {
	// Create persiste una venta nueva con sus items
	// Retorna entity.ErrDuplicateSaleNumber si el number ya existe
	// (el unique index es la detección de conflicto del generador de números)
	Create(ctx context.Context, sale *entity.Sale) error

	// GetByID retorna la venta sin items, o entity.ErrSaleNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)

	// GetByIDWithItems retorna la venta con todos sus items (incluso cancelados),
	// o entity.ErrSaleNotFound
	GetByIDWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)

	// List retorna una página de ventas ordenadas por fecha descendente
	// junto con el total de registros que matchean los filtros
	List(ctx context.Context, filters ListSalesFilters) ([]*entity.Sale, int, error)

	// Update persiste el estado actual del aggregate (venta + items)
	Update(ctx context.Context, sale *entity.Sale) error

	// Delete elimina una venta y sus items; entity.ErrSaleNotFound si no existe
	Delete(ctx context.Context, id uuid.UUID) error

	// GetLastSaleNumberByDatePrefix retorna el mayor number emitido para el
	// prefijo de fecha YYYYMMDD, o "" si no hay ventas ese día
	GetLastSaleNumberByDatePrefix(ctx context.Context, datePrefix string) (string, error)
}
