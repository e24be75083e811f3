package usecase

import (
	"context"

	"sales/src/sales/application/response"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// GetSaleUseCase caso de uso para obtener una venta por id
type GetSaleUseCase struct {
	saleRepo port.SaleRepository
}

// NewGetSaleUseCase crea una nueva instancia del caso de uso
func NewGetSaleUseCase(saleRepo port.SaleRepository) *GetSaleUseCase {
	return &GetSaleUseCase{saleRepo: saleRepo}
}

// Execute retorna la venta con todos sus items (incluye cancelados)
func (uc *GetSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) (*response.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByIDWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return response.NewSaleResponse(sale, sale.Items), nil
}
