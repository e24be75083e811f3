package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sales/src/sales/application/request"
	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/sales/domain/service"
	"sales/src/shared/infrastructure/metrics"

	"github.com/google/uuid"
)

// maxSaleNumberAttempts acota los reintentos ante colisión de sale number
const maxSaleNumberAttempts = 3

// CreateSaleUseCase caso de uso para crear una venta
type CreateSaleUseCase struct {
	saleRepo  port.SaleRepository
	userRepo  port.UserRepository
	numberGen *service.SaleNumberGenerator
	publisher port.EventPublisher
}

// NewCreateSaleUseCase crea una nueva instancia del caso de uso
func NewCreateSaleUseCase(
	saleRepo port.SaleRepository,
	userRepo port.UserRepository,
	numberGen *service.SaleNumberGenerator,
	publisher port.EventPublisher,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		saleRepo:  saleRepo,
		userRepo:  userRepo,
		numberGen: numberGen,
		publisher: publisher,
	}
}

// Execute ejecuta la creación de la venta:
// 1. Resolver el cliente y verificar rol Customer
// 2. Armar el aggregate en memoria (items con descuento aplicado)
// 3. Proponer un sale number y commitear; ante colisión del unique index
//    regenerar el número y reintentar (propose-then-commit)
// 4. Publicar SaleCreatedEvent (fire-and-forget)
func (uc *CreateSaleUseCase) Execute(ctx context.Context, customerID uuid.UUID, req *request.CreateSaleRequest) (*response.SaleResponse, error) {
	// 1. Resolver cliente
	user, err := uc.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !user.IsCustomer() {
		return nil, entity.ErrUserNotCustomer
	}

	// 2. Crear aggregate en memoria (aún sin number definitivo)
	sale, err := entity.NewSale("", req.Date, req.BranchName, customerID)
	if err != nil {
		return nil, err
	}

	for _, itemReq := range req.Items {
		item, err := entity.NewSaleItem(sale.ID, itemReq.ProductName, itemReq.Quantity, itemReq.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("error creating sale item %q: %w", itemReq.ProductName, err)
		}
		if err := sale.AddItem(item); err != nil {
			return nil, err
		}
	}

	// 3. Proponer number y commitear, con reintento acotado ante colisión
	if err := uc.commitWithUniqueNumber(ctx, sale); err != nil {
		return nil, err
	}

	log.Printf("✅ Sale created: ID=%s, Number=%s, Items=%d, Total=%s",
		sale.ID, sale.Number, len(sale.Items), sale.TotalAmount)
	metrics.SalesCreated.Inc()

	// 4. Publicar evento (una falla de publicación no revierte la venta)
	if err := uc.publisher.Publish(ctx, entity.SaleCreatedEvent{
		SaleID:     sale.ID,
		SaleNumber: sale.Number,
		Date:       sale.Date,
		CustomerID: sale.CustomerID,
		Items:      entity.NewSaleItemsEventData(sale.Items),
	}); err != nil {
		log.Printf("⚠️  Error publishing SaleCreatedEvent: %v", err)
	}

	return response.NewSaleResponse(sale, sale.Items), nil
}

// commitWithUniqueNumber propone un sale number y persiste la venta
// El unique index de number detecta la carrera entre creaciones concurrentes
// del mismo día; ante colisión se regenera el número y se reintenta
func (uc *CreateSaleUseCase) commitWithUniqueNumber(ctx context.Context, sale *entity.Sale) error {
	var lastErr error

	for attempt := 1; attempt <= maxSaleNumberAttempts; attempt++ {
		number, err := uc.numberGen.NextNumber(ctx, time.Now())
		if err != nil {
			return err
		}
		sale.Number = number

		err = uc.saleRepo.Create(ctx, sale)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entity.ErrDuplicateSaleNumber) {
			return err
		}

		metrics.SaleNumberConflicts.Inc()
		log.Printf("⚠️  Sale number conflict on %s (attempt %d/%d), regenerating",
			number, attempt, maxSaleNumberAttempts)
		lastErr = err
	}

	return fmt.Errorf("could not allocate a unique sale number after %d attempts: %w",
		maxSaleNumberAttempts, lastErr)
}
