package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListSaleItem es una venta dentro del listado paginado (sin items)
type ListSaleItem struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Date        time.Time       `json:"date"`
	BranchName  string          `json:"branch_name"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsCancelled bool            `json:"is_cancelled"`
}

// ListSalesResponse es la respuesta paginada del listado de ventas
type ListSalesResponse struct {
	Items      []ListSaleItem `json:"items"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
