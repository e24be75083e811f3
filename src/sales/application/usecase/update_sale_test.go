package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales/src/sales/application/request"
	"sales/src/sales/application/usecase"
	"sales/src/sales/domain/entity"
)

func newUpdateSaleFixture(customer *entity.User) (*usecase.UpdateSaleUseCase, *fakeSaleRepository, *fakeEventPublisher) {
	saleRepo := newFakeSaleRepository()
	userRepo := newFakeUserRepository(customer)
	publisher := &fakeEventPublisher{}

	uc := usecase.NewUpdateSaleUseCase(saleRepo, userRepo, publisher)
	return uc, saleRepo, publisher
}

// =============================================================================
// UPDATE SALE
// =============================================================================

func TestUpdateSale_BulkEdit(t *testing.T) {
	// GIVEN: una venta con dos items (2x100 y 5x100 con 10%)
	customer := newCustomer()
	uc, saleRepo, publisher := newUpdateSaleFixture(customer)
	sale := storedSale(t, saleRepo, time.Now().UTC(), customer.ID, 2, 5)
	firstID := sale.Items[0].ID
	secondID := sale.Items[1].ID

	newDate := time.Now().UTC().Add(-time.Hour)
	req := &request.UpdateSaleRequest{
		Date:       newDate,
		BranchName: "Sucursal Norte",
		Items: []request.UpdateSaleItemRequest{
			// Cancelar el primer item
			{ID: &firstID, IsCancelled: true},
			// Actualizar el segundo: 4x50 → 10% de descuento
			{ID: &secondID, ProductName: "Cerveza Stout 473ml", Quantity: 4, UnitPrice: decimal.NewFromInt(50)},
			// Agregar uno nuevo sin descuento: 2x90
			{ProductName: "Cerveza Porter 473ml", Quantity: 2, UnitPrice: decimal.NewFromInt(90)},
		},
	}

	// WHEN: se aplica la edición bulk
	resp, err := uc.Execute(context.Background(), sale.ID, customer.ID, req)

	// THEN: header e items reflejan los cambios y el total excluye el cancelado
	require.NoError(t, err)
	assert.Equal(t, "Sucursal Norte", resp.BranchName)
	assert.True(t, newDate.Equal(resp.Date))

	// 4x50 - 10% = 180, 2x90 = 180 → total 360
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("360.00")),
		"expected total 360.00, got %s", resp.TotalAmount)

	// La respuesta del update solo lista los items activos
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.False(t, item.IsCancelled)
	}

	// El aggregate persistido conserva el item cancelado
	stored := saleRepo.sales[sale.ID]
	assert.Len(t, stored.Items, 3)
	assert.True(t, stored.Items[0].IsCancelled)

	require.Len(t, publisher.events, 1)
	_, ok := publisher.events[0].(entity.SaleModifiedEvent)
	require.True(t, ok)
}

func TestUpdateSale_NotFound(t *testing.T) {
	customer := newCustomer()
	uc, _, _ := newUpdateSaleFixture(customer)

	req := &request.UpdateSaleRequest{
		Date:       time.Now().UTC(),
		BranchName: "Sucursal Centro",
		Items: []request.UpdateSaleItemRequest{
			{ProductName: "Producto", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	_, err := uc.Execute(context.Background(), uuid.New(), customer.ID, req)

	assert.ErrorIs(t, err, entity.ErrSaleNotFound)
}

func TestUpdateSale_CancelledSaleRejected(t *testing.T) {
	customer := newCustomer()
	uc, saleRepo, _ := newUpdateSaleFixture(customer)
	sale := storedSale(t, saleRepo, time.Now().UTC(), customer.ID, 2)
	require.NoError(t, sale.Cancel(entity.DefaultCancellationWindow))

	req := &request.UpdateSaleRequest{
		Date:       time.Now().UTC(),
		BranchName: "Sucursal Centro",
		Items: []request.UpdateSaleItemRequest{
			{ProductName: "Producto", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	_, err := uc.Execute(context.Background(), sale.ID, customer.ID, req)

	assert.ErrorIs(t, err, entity.ErrSaleCancelled)
}

func TestUpdateSale_UserIsNotACustomer(t *testing.T) {
	admin := &entity.User{
		ID:    uuid.New(),
		Name:  "Root",
		Email: "root@example.com",
		Role:  entity.UserRoleAdmin,
	}
	uc, saleRepo, _ := newUpdateSaleFixture(admin)
	sale := storedSale(t, saleRepo, time.Now().UTC(), admin.ID, 2)

	req := &request.UpdateSaleRequest{
		Date:       time.Now().UTC(),
		BranchName: "Sucursal Centro",
		Items: []request.UpdateSaleItemRequest{
			{ProductName: "Producto", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	_, err := uc.Execute(context.Background(), sale.ID, admin.ID, req)

	assert.ErrorIs(t, err, entity.ErrUserNotCustomer)
}

func TestUpdateSale_CannotLeaveSaleWithoutActiveItems(t *testing.T) {
	// GIVEN: una venta con un único item activo
	customer := newCustomer()
	uc, saleRepo, publisher := newUpdateSaleFixture(customer)
	sale := storedSale(t, saleRepo, time.Now().UTC(), customer.ID, 2)
	itemID := sale.Items[0].ID

	req := &request.UpdateSaleRequest{
		Date:       time.Now().UTC(),
		BranchName: "Sucursal Centro",
		Items: []request.UpdateSaleItemRequest{
			{ID: &itemID, IsCancelled: true},
		},
	}

	// WHEN: la edición cancelaría todos los items
	_, err := uc.Execute(context.Background(), sale.ID, customer.ID, req)

	// THEN: el invariante bulk lo rechaza al final del batch y nada se persiste
	assert.ErrorIs(t, err, entity.ErrSaleMustHaveItems)
	assert.Empty(t, publisher.events)
}
