package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
)

// fakeSaleRepository implementa port.SaleRepository en memoria para los tests
// createErrs permite inyectar fallas en las próximas llamadas a Create
// (una por llamada, en orden) para simular colisiones del unique index
type fakeSaleRepository struct {
	sales       map[uuid.UUID]*entity.Sale
	createErrs  []error
	createCalls int
	updateErr   error
	lastNumber  string
	listSales   []*entity.Sale
	listTotal   int
	lastFilters port.ListSalesFilters
}

func newFakeSaleRepository() *fakeSaleRepository {
	return &fakeSaleRepository{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (f *fakeSaleRepository) Create(_ context.Context, sale *entity.Sale) error {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return nil, entity.ErrSaleNotFound
	}
	return sale, nil
}

func (f *fakeSaleRepository) GetByIDWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSaleRepository) List(_ context.Context, filters port.ListSalesFilters) ([]*entity.Sale, int, error) {
	f.lastFilters = filters
	return f.listSales, f.listTotal, nil
}

func (f *fakeSaleRepository) Update(_ context.Context, sale *entity.Sale) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.sales[sale.ID]; !ok {
		return entity.ErrSaleNotFound
	}
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.sales[id]; !ok {
		return entity.ErrSaleNotFound
	}
	delete(f.sales, id)
	return nil
}

func (f *fakeSaleRepository) GetLastSaleNumberByDatePrefix(_ context.Context, _ string) (string, error) {
	return f.lastNumber, nil
}

// fakeUserRepository implementa port.UserRepository en memoria
type fakeUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// fakeEventPublisher registra los eventos publicados
type fakeEventPublisher struct {
	events []any
	err    error
}

func (f *fakeEventPublisher) Publish(_ context.Context, event any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func newCustomer() *entity.User {
	return &entity.User{
		ID:    uuid.New(),
		Name:  "Juan Pérez",
		Email: "juan.perez@example.com",
		Role:  entity.UserRoleCustomer,
	}
}

// storedSale arma una venta persistida con items "Cerveza Lager 473ml" a precio 100
func storedSale(t *testing.T, repo *fakeSaleRepository, date time.Time, customerID uuid.UUID, quantities ...int) *entity.Sale {
	t.Helper()

	sale, err := entity.NewSale("SALE-20250519-0001", date, "Sucursal Centro", customerID)
	require.NoError(t, err)

	for _, quantity := range quantities {
		item, err := entity.NewSaleItem(sale.ID, "Cerveza Lager 473ml", quantity, decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, sale.AddItem(item))
	}

	repo.sales[sale.ID] = sale
	return sale
}
