package usecase

import (
	"context"
	"log"

	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"
	"sales/src/shared/infrastructure/metrics"

	"github.com/google/uuid"
)

// CancelSaleItemUseCase caso de uso para cancelar un item individual de una venta
type CancelSaleItemUseCase struct {
	saleRepo  port.SaleRepository
	publisher port.EventPublisher
}

// NewCancelSaleItemUseCase crea una nueva instancia del caso de uso
func NewCancelSaleItemUseCase(saleRepo port.SaleRepository, publisher port.EventPublisher) *CancelSaleItemUseCase {
	return &CancelSaleItemUseCase{
		saleRepo:  saleRepo,
		publisher: publisher,
	}
}

// Execute cancela el item y recalcula el total de la venta
// El aggregate rechaza cancelar el último item activo
func (uc *CancelSaleItemUseCase) Execute(ctx context.Context, saleID, itemID uuid.UUID) error {
	sale, err := uc.saleRepo.GetByIDWithItems(ctx, saleID)
	if err != nil {
		return err
	}

	item, err := sale.CancelItem(itemID)
	if err != nil {
		return err
	}

	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return err
	}

	log.Printf("✅ Sale item cancelled: Sale=%s, Item=%s", sale.ID, item.ID)
	metrics.SaleItemsCancelled.Inc()

	if err := uc.publisher.Publish(ctx, entity.ItemCancelledEvent{
		SaleID:           sale.ID,
		SaleItemID:       item.ID,
		CancellationDate: *item.CancellationDate,
	}); err != nil {
		log.Printf("⚠️  Error publishing ItemCancelledEvent: %v", err)
	}

	return nil
}
