package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sales/src/sales/domain/entity"
)

// SaleItemResponse es la representación de un item en las respuestas
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsCancelled bool            `json:"is_cancelled"`
}

// SaleResponse es la representación completa de una venta en las respuestas
type SaleResponse struct {
	ID               uuid.UUID          `json:"id"`
	Number           string             `json:"number"`
	Date             time.Time          `json:"date"`
	BranchName       string             `json:"branch_name"`
	CustomerID       uuid.UUID          `json:"customer_id"`
	TotalAmount      decimal.Decimal    `json:"total_amount"`
	IsCancelled      bool               `json:"is_cancelled"`
	CancellationDate *time.Time         `json:"cancellation_date,omitempty"`
	Items            []SaleItemResponse `json:"items"`
}

// NewSaleItemResponses mapea items de dominio a sus DTOs de respuesta
func NewSaleItemResponses(items []entity.SaleItem) []SaleItemResponse {
	resp := make([]SaleItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, SaleItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalAmount: item.TotalAmount,
			IsCancelled: item.IsCancelled,
		})
	}
	return resp
}

// NewSaleResponse mapea una venta de dominio a su DTO de respuesta
func NewSaleResponse(sale *entity.Sale, items []entity.SaleItem) *SaleResponse {
	return &SaleResponse{
		ID:               sale.ID,
		Number:           sale.Number,
		Date:             sale.Date,
		BranchName:       sale.BranchName,
		CustomerID:       sale.CustomerID,
		TotalAmount:      sale.TotalAmount,
		IsCancelled:      sale.IsCancelled,
		CancellationDate: sale.CancellationDate,
		Items:            NewSaleItemResponses(items),
	}
}
