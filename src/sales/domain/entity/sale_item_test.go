package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales/src/sales/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestItem(t *testing.T, quantity int, unitPrice string) *entity.SaleItem {
	t.Helper()
	item, err := entity.NewSaleItem(uuid.New(), "Cerveza IPA 473ml", quantity, dec(unitPrice))
	require.NoError(t, err)
	return item
}

// =============================================================================
// DISCOUNT POLICY
// =============================================================================

func TestCalculateDiscount_NoDiscountBelowFourItems(t *testing.T) {
	unitPrice := dec("100")

	for quantity := 1; quantity <= 3; quantity++ {
		discount := entity.CalculateDiscount(quantity, unitPrice)
		assert.True(t, discount.IsZero(), "quantity %d should have no discount, got %s", quantity, discount)
	}
}

func TestCalculateDiscount_TenPercentTier(t *testing.T) {
	unitPrice := dec("100")

	for quantity := 4; quantity <= 9; quantity++ {
		discount := entity.CalculateDiscount(quantity, unitPrice)
		expected := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(dec("0.10")).Round(2)
		assert.True(t, discount.Equal(expected), "quantity %d: expected %s, got %s", quantity, expected, discount)
	}
}

func TestCalculateDiscount_TwentyPercentTier(t *testing.T) {
	unitPrice := dec("100")

	for quantity := 10; quantity <= 20; quantity++ {
		discount := entity.CalculateDiscount(quantity, unitPrice)
		expected := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(dec("0.20")).Round(2)
		assert.True(t, discount.Equal(expected), "quantity %d: expected %s, got %s", quantity, expected, discount)
	}
}

func TestSaleItem_DiscountScenarios(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		unitPrice    string
		wantDiscount string
		wantTotal    string
	}{
		{"5 items at 100 get 10% off", 5, "100", "50.00", "450.00"},
		{"3 items at 100 get no discount", 3, "100", "0", "300.00"},
		{"15 items at 100 get 20% off", 15, "100", "300.00", "1200.00"},
		{"4 items at 9.99, rounded discount", 4, "9.99", "4.00", "35.96"},
		{"20 items at 0.01, edge of the top tier", 20, "0.01", "0.04", "0.16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newTestItem(t, tt.quantity, tt.unitPrice)

			assert.True(t, item.Discount.Equal(dec(tt.wantDiscount)),
				"discount: expected %s, got %s", tt.wantDiscount, item.Discount)
			assert.True(t, item.TotalAmount.Equal(dec(tt.wantTotal)),
				"total: expected %s, got %s", tt.wantTotal, item.TotalAmount)
		})
	}
}

func TestSaleItem_ApplyDiscountRule_Idempotent(t *testing.T) {
	item := newTestItem(t, 10, "33.33")

	discount := item.Discount
	total := item.TotalAmount

	item.ApplyDiscountRule()
	item.ApplyDiscountRule()

	assert.True(t, item.Discount.Equal(discount))
	assert.True(t, item.TotalAmount.Equal(total))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestNewSaleItem_Validation(t *testing.T) {
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'a'
	}

	tests := []struct {
		name        string
		productName string
		quantity    int
		unitPrice   string
		wantErr     error
	}{
		{"empty product name", "", 1, "10", entity.ErrProductNameRequired},
		{"whitespace product name", "   ", 1, "10", entity.ErrProductNameRequired},
		{"product name over 100 chars", string(longName), 1, "10", entity.ErrProductNameTooLong},
		{"zero quantity", "Producto", 0, "10", entity.ErrInvalidQuantity},
		{"negative quantity", "Producto", -1, "10", entity.ErrInvalidQuantity},
		{"quantity over 20", "Producto", 21, "10", entity.ErrQuantityTooLarge},
		{"zero unit price", "Producto", 1, "0", entity.ErrInvalidUnitPrice},
		{"negative unit price", "Producto", 1, "-5", entity.ErrInvalidUnitPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := entity.NewSaleItem(uuid.New(), tt.productName, tt.quantity, dec(tt.unitPrice))

			assert.Nil(t, item)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, entity.IsValidationError(err))
		})
	}
}

func TestSaleItem_Update_RecomputesDiscount(t *testing.T) {
	// GIVEN: un item sin descuento
	item := newTestItem(t, 2, "100")
	require.True(t, item.Discount.IsZero())

	// WHEN: se actualiza a una cantidad con descuento del 20%
	err := item.Update("Cerveza Stout 473ml", 12, dec("50"))
	require.NoError(t, err)

	// THEN: descuento y total quedan consistentes con la nueva cantidad
	assert.Equal(t, "Cerveza Stout 473ml", item.ProductName)
	assert.True(t, item.Discount.Equal(dec("120.00")))
	assert.True(t, item.TotalAmount.Equal(dec("480.00")))
}

func TestSaleItem_Update_InvalidInputLeavesItemIntact(t *testing.T) {
	item := newTestItem(t, 5, "100")

	err := item.Update("Producto", 25, dec("100"))

	assert.ErrorIs(t, err, entity.ErrQuantityTooLarge)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, item.Discount.Equal(dec("50.00")))
	assert.True(t, item.TotalAmount.Equal(dec("450.00")))
}

// =============================================================================
// CANCELLATION
// =============================================================================

func TestSaleItem_Cancel(t *testing.T) {
	item := newTestItem(t, 1, "10")

	err := item.Cancel()
	require.NoError(t, err)

	assert.True(t, item.IsCancelled)
	require.NotNil(t, item.CancellationDate)

	// Cancelar dos veces falla: el caller debe chequear antes
	err = item.Cancel()
	assert.ErrorIs(t, err, entity.ErrItemAlreadyCancelled)
	assert.True(t, entity.IsAlreadyCancelled(err))
}
