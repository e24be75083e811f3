package usecase

import (
	"context"
	"log"

	"sales/src/sales/application/request"
	"sales/src/sales/application/response"
	"sales/src/sales/domain/entity"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// UpdateSaleUseCase caso de uso para la edición completa de una venta
// (header + edición bulk de items)
type UpdateSaleUseCase struct {
	saleRepo  port.SaleRepository
	userRepo  port.UserRepository
	publisher port.EventPublisher
}

// NewUpdateSaleUseCase crea una nueva instancia del caso de uso
func NewUpdateSaleUseCase(
	saleRepo port.SaleRepository,
	userRepo port.UserRepository,
	publisher port.EventPublisher,
) *UpdateSaleUseCase {
	return &UpdateSaleUseCase{
		saleRepo:  saleRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Execute ejecuta la actualización de la venta:
// 1. Cargar el aggregate con items
// 2. Resolver el cliente y verificar rol Customer
// 3. Reemplazar header y aplicar la edición bulk de items
// 4. Persistir y publicar SaleModifiedEvent
// La edición bulk valida el invariante "al menos un item activo" al final
// del batch, no comando por comando
func (uc *UpdateSaleUseCase) Execute(ctx context.Context, saleID, customerID uuid.UUID, req *request.UpdateSaleRequest) (*response.SaleResponse, error) {
	// 1. Cargar aggregate
	sale, err := uc.saleRepo.GetByIDWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.IsCancelled {
		return nil, entity.ErrSaleCancelled
	}

	// 2. Resolver cliente
	user, err := uc.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !user.IsCustomer() {
		return nil, entity.ErrUserNotCustomer
	}

	// 3. Mutar el aggregate en memoria
	if err := sale.UpdateHeader(req.Date, req.BranchName, customerID); err != nil {
		return nil, err
	}

	changes := make([]entity.SaleItemChange, 0, len(req.Items))
	for _, itemReq := range req.Items {
		changes = append(changes, entity.SaleItemChange{
			ID:          itemReq.ID,
			ProductName: itemReq.ProductName,
			Quantity:    itemReq.Quantity,
			UnitPrice:   itemReq.UnitPrice,
			Cancelled:   itemReq.IsCancelled,
		})
	}
	if err := sale.ReplaceItems(changes); err != nil {
		return nil, err
	}

	// 4. Persistir y publicar
	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, entity.SaleModifiedEvent{
		SaleID:     sale.ID,
		SaleNumber: sale.Number,
		Date:       sale.Date,
		CustomerID: sale.CustomerID,
		Items:      entity.NewSaleItemsEventData(sale.Items),
	}); err != nil {
		log.Printf("⚠️  Error publishing SaleModifiedEvent: %v", err)
	}

	// La respuesta del update solo muestra los items activos
	return response.NewSaleResponse(sale, sale.ActiveItems()), nil
}
