package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales/src/sales/application/request"
	"sales/src/sales/application/usecase"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/service"
)

func newCreateSaleFixture(customer *entity.User) (*usecase.CreateSaleUseCase, *fakeSaleRepository, *fakeEventPublisher) {
	saleRepo := newFakeSaleRepository()
	userRepo := newFakeUserRepository(customer)
	publisher := &fakeEventPublisher{}
	numberGen := service.NewSaleNumberGenerator(saleRepo)

	uc := usecase.NewCreateSaleUseCase(saleRepo, userRepo, numberGen, publisher)
	return uc, saleRepo, publisher
}

func validCreateRequest() *request.CreateSaleRequest {
	return &request.CreateSaleRequest{
		Date:       time.Now().UTC(),
		BranchName: "Sucursal Centro",
		Items: []request.CreateSaleItemRequest{
			{ProductName: "Cerveza Lager 473ml", Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
			{ProductName: "Cerveza IPA 473ml", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
	}
}

// =============================================================================
// CREATE SALE
// =============================================================================

func TestCreateSale_Success(t *testing.T) {
	// GIVEN: un cliente válido y un request con un item con descuento y otro sin
	customer := newCustomer()
	uc, saleRepo, publisher := newCreateSaleFixture(customer)

	// WHEN: se crea la venta
	resp, err := uc.Execute(context.Background(), customer.ID, validCreateRequest())

	// THEN: la venta queda persistida con number secuencial del día y total correcto
	require.NoError(t, err)
	require.NotNil(t, resp)

	expectedNumber := fmt.Sprintf("SALE-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expectedNumber, resp.Number)
	assert.Equal(t, customer.ID, resp.CustomerID)
	assert.False(t, resp.IsCancelled)
	require.Len(t, resp.Items, 2)

	// 5x100 con 10% → 450, 2x50 sin descuento → 100
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("550.00")),
		"expected total 550.00, got %s", resp.TotalAmount)

	stored, ok := saleRepo.sales[resp.ID]
	require.True(t, ok)
	assert.Equal(t, expectedNumber, stored.Number)

	// Y se publicó el evento de creación
	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].(entity.SaleCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, resp.ID, event.SaleID)
	assert.Len(t, event.Items, 2)
}

func TestCreateSale_UserNotFound(t *testing.T) {
	customer := newCustomer()
	uc, saleRepo, _ := newCreateSaleFixture(customer)

	_, err := uc.Execute(context.Background(), uuid.New(), validCreateRequest())

	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.Zero(t, saleRepo.createCalls)
}

func TestCreateSale_UserIsNotACustomer(t *testing.T) {
	manager := &entity.User{
		ID:    uuid.New(),
		Name:  "Ana Gómez",
		Email: "ana.gomez@example.com",
		Role:  entity.UserRoleManager,
	}
	uc, saleRepo, _ := newCreateSaleFixture(manager)

	_, err := uc.Execute(context.Background(), manager.ID, validCreateRequest())

	assert.ErrorIs(t, err, entity.ErrUserNotCustomer)
	assert.Zero(t, saleRepo.createCalls)
}

func TestCreateSale_InvalidItemFails(t *testing.T) {
	customer := newCustomer()
	uc, saleRepo, _ := newCreateSaleFixture(customer)

	req := validCreateRequest()
	req.Items[0].Quantity = 25

	_, err := uc.Execute(context.Background(), customer.ID, req)

	assert.ErrorIs(t, err, entity.ErrQuantityTooLarge)
	assert.Zero(t, saleRepo.createCalls)
}

func TestCreateSale_RetriesOnNumberConflict(t *testing.T) {
	// GIVEN: el primer Create pierde la carrera del unique index de number
	customer := newCustomer()
	uc, saleRepo, _ := newCreateSaleFixture(customer)
	saleRepo.createErrs = []error{entity.ErrDuplicateSaleNumber}

	// WHEN: se crea la venta
	resp, err := uc.Execute(context.Background(), customer.ID, validCreateRequest())

	// THEN: se regenera el número y el segundo intento commitea
	require.NoError(t, err)
	assert.Equal(t, 2, saleRepo.createCalls)
	assert.Contains(t, saleRepo.sales, resp.ID)
}

func TestCreateSale_GivesUpAfterMaxAttempts(t *testing.T) {
	customer := newCustomer()
	uc, saleRepo, publisher := newCreateSaleFixture(customer)
	saleRepo.createErrs = []error{
		entity.ErrDuplicateSaleNumber,
		entity.ErrDuplicateSaleNumber,
		entity.ErrDuplicateSaleNumber,
	}

	_, err := uc.Execute(context.Background(), customer.ID, validCreateRequest())

	assert.ErrorIs(t, err, entity.ErrDuplicateSaleNumber)
	assert.Equal(t, 3, saleRepo.createCalls)
	assert.Empty(t, publisher.events)
}

func TestCreateSale_NonConflictErrorDoesNotRetry(t *testing.T) {
	customer := newCustomer()
	uc, saleRepo, _ := newCreateSaleFixture(customer)
	repoErr := errors.New("connection reset")
	saleRepo.createErrs = []error{repoErr}

	_, err := uc.Execute(context.Background(), customer.ID, validCreateRequest())

	assert.ErrorIs(t, err, repoErr)
	assert.Equal(t, 1, saleRepo.createCalls)
}

func TestCreateSale_PublisherFailureDoesNotRevertSale(t *testing.T) {
	customer := newCustomer()
	uc, saleRepo, publisher := newCreateSaleFixture(customer)
	publisher.err = errors.New("broker unavailable")

	resp, err := uc.Execute(context.Background(), customer.ID, validCreateRequest())

	require.NoError(t, err)
	assert.Contains(t, saleRepo.sales, resp.ID)
}
