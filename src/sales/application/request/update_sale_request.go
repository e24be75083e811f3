package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateSaleItemRequest es un comando de edición bulk sobre un item:
// con id e is_cancelled → cancelar, con id → actualizar, sin id → agregar
type UpdateSaleItemRequest struct {
	ID          *uuid.UUID      `json:"id,omitempty"`
	ProductName string          `json:"product_name" binding:"max=100"`
	Quantity    int             `json:"quantity" binding:"lte=20"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsCancelled bool            `json:"is_cancelled"`
}

// UpdateSaleRequest es el request para actualizar una venta completa
type UpdateSaleRequest struct {
	Date       time.Time               `json:"date" binding:"required"`
	BranchName string                  `json:"branch_name" binding:"required,max=100"`
	Items      []UpdateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}
