package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemEventData es el snapshot de un item dentro de un evento de venta
type SaleItemEventData struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SaleCreatedEvent se publica después de persistir una venta nueva
type SaleCreatedEvent struct {
	SaleID     uuid.UUID           `json:"sale_id"`
	SaleNumber string              `json:"sale_number"`
	Date       time.Time           `json:"date"`
	CustomerID uuid.UUID           `json:"customer_id"`
	Items      []SaleItemEventData `json:"items"`
}

// SaleModifiedEvent se publica después de actualizar una venta
type SaleModifiedEvent struct {
	SaleID     uuid.UUID           `json:"sale_id"`
	SaleNumber string              `json:"sale_number"`
	Date       time.Time           `json:"date"`
	CustomerID uuid.UUID           `json:"customer_id"`
	Items      []SaleItemEventData `json:"items"`
}

// SaleCancelledEvent se publica después de cancelar una venta completa
type SaleCancelledEvent struct {
	SaleID           uuid.UUID `json:"sale_id"`
	CancellationDate time.Time `json:"cancellation_date"`
}

// ItemCancelledEvent se publica después de cancelar un item individual
type ItemCancelledEvent struct {
	SaleID           uuid.UUID `json:"sale_id"`
	SaleItemID       uuid.UUID `json:"sale_item_id"`
	CancellationDate time.Time `json:"cancellation_date"`
}

// NewSaleItemsEventData arma el snapshot de items para eventos created/modified
func NewSaleItemsEventData(items []SaleItem) []SaleItemEventData {
	data := make([]SaleItemEventData, 0, len(items))
	for _, item := range items {
		data = append(data, SaleItemEventData{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalAmount: item.TotalAmount,
		})
	}
	return data
}
