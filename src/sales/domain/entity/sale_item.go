package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Umbrales de descuento por cantidad de items idénticos
var (
	discountTier10 = decimal.NewFromFloat(0.10) // 4 a 9 items
	discountTier20 = decimal.NewFromFloat(0.20) // 10 a 20 items
)

// SaleItem representa una línea de producto dentro de una venta (Entity dentro del Aggregate)
// Discount y TotalAmount son derivados: siempre se recalculan desde Quantity/UnitPrice
type SaleItem struct {
	ID               uuid.UUID       `json:"id"`
	SaleID           uuid.UUID       `json:"sale_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount         decimal.Decimal `json:"discount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	IsCancelled      bool            `json:"is_cancelled"`
	CancellationDate *time.Time      `json:"cancellation_date,omitempty"`
}

// NewSaleItem crea un nuevo item de venta con el descuento ya aplicado
func NewSaleItem(saleID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*SaleItem, error) {
	if err := validateSaleItem(productName, quantity, unitPrice); err != nil {
		return nil, err
	}

	item := &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    decimal.Zero,
		IsCancelled: false,
	}
	item.ApplyDiscountRule()

	return item, nil
}

// validateSaleItem valida los campos de un item antes de cualquier mutación
func validateSaleItem(productName string, quantity int, unitPrice decimal.Decimal) error {
	if strings.TrimSpace(productName) == "" {
		return ErrProductNameRequired
	}
	if len(productName) > 100 {
		return ErrProductNameTooLong
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > 20 {
		return ErrQuantityTooLarge
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidUnitPrice
	}
	return nil
}

// CalculateDiscount es la política de descuento por cantidad (función pura):
//   - 10 a 20 items idénticos: 20% de descuento
//   - 4 a 9 items idénticos: 10% de descuento
//   - menos de 4 items: sin descuento
//
// El redondeo a 2 decimales es half-away-from-zero (Decimal.Round) y se
// aplica una sola vez sobre el descuento calculado
func CalculateDiscount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	switch {
	case quantity >= 10 && quantity <= 20:
		return gross.Mul(discountTier20).Round(2)
	case quantity >= 4:
		return gross.Mul(discountTier10).Round(2)
	default:
		return decimal.Zero
	}
}

// ApplyDiscountRule recalcula Discount y TotalAmount desde Quantity/UnitPrice
// Es idempotente: con los mismos inputs produce siempre el mismo resultado
func (i *SaleItem) ApplyDiscountRule() {
	i.Discount = CalculateDiscount(i.Quantity, i.UnitPrice)
	i.calculateTotalAmount()
}

// calculateTotalAmount deriva el total: quantity × unit_price − discount
func (i *SaleItem) calculateTotalAmount() {
	i.TotalAmount = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount).Round(2)
}

// Update reemplaza los campos del item y re-aplica la regla de descuento
// Valida todo antes de mutar: si falla, el item queda intacto
func (i *SaleItem) Update(productName string, quantity int, unitPrice decimal.Decimal) error {
	if err := validateSaleItem(productName, quantity, unitPrice); err != nil {
		return err
	}

	i.ProductName = productName
	i.Quantity = quantity
	i.UnitPrice = unitPrice
	i.ApplyDiscountRule()

	return nil
}

// Cancel marca el item como cancelado (transición one-way)
func (i *SaleItem) Cancel() error {
	if i.IsCancelled {
		return ErrItemAlreadyCancelled
	}

	now := time.Now().UTC()
	i.IsCancelled = true
	i.CancellationDate = &now

	return nil
}
