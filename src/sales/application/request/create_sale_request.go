package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleItemRequest es un item dentro del request de creación de venta
type CreateSaleItemRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=100"`
	Quantity    int             `json:"quantity" binding:"required,gte=1,lte=20"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSaleRequest es el request para crear una venta
// El customer_id llega por header (identidad del caller), no por body
type CreateSaleRequest struct {
	Date       time.Time               `json:"date" binding:"required"`
	BranchName string                  `json:"branch_name" binding:"required,max=100"`
	Items      []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}
