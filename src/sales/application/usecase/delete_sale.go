package usecase

import (
	"context"
	"log"

	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// DeleteSaleUseCase caso de uso para eliminar físicamente una venta
// (operación administrativa; la cancelación es el flujo de negocio normal)
type DeleteSaleUseCase struct {
	saleRepo port.SaleRepository
}

// NewDeleteSaleUseCase crea una nueva instancia del caso de uso
func NewDeleteSaleUseCase(saleRepo port.SaleRepository) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{saleRepo: saleRepo}
}

// Execute elimina la venta y sus items
func (uc *DeleteSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) error {
	if err := uc.saleRepo.Delete(ctx, saleID); err != nil {
		return err
	}

	log.Printf("✅ Sale deleted: ID=%s", saleID)
	return nil
}
