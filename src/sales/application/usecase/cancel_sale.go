package usecase

import (
	"context"
	"log"
	"time"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/infrastructure/metrics"

	"github.com/google/uuid"
)

// CancelSaleUseCase caso de uso para cancelar una venta completa
type CancelSaleUseCase struct {
	saleRepo  port.SaleRepository
	publisher port.EventPublisher
	window    time.Duration
}

// NewCancelSaleUseCase crea una nueva instancia del caso de uso
// window es la ventana máxima de cancelación (default 30 días)
func NewCancelSaleUseCase(saleRepo port.SaleRepository, publisher port.EventPublisher, window time.Duration) *CancelSaleUseCase {
	if window <= 0 {
		window = entity.DefaultCancellationWindow
	}
	return &CancelSaleUseCase{
		saleRepo:  saleRepo,
		publisher: publisher,
		window:    window,
	}
}

// Execute cancela la venta si no está cancelada y está dentro de la ventana
func (uc *CancelSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) error {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}

	if err := sale.Cancel(uc.window); err != nil {
		return err
	}

	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return err
	}

	log.Printf("✅ Sale cancelled: ID=%s, Number=%s", sale.ID, sale.Number)
	metrics.SalesCancelled.Inc()

	if err := uc.publisher.Publish(ctx, entity.SaleCancelledEvent{
		SaleID:           sale.ID,
		CancellationDate: *sale.CancellationDate,
	}); err != nil {
		log.Printf("⚠️  Error publishing SaleCancelledEvent: %v", err)
	}

	return nil
}
