package usecase

import (
	"context"
	"fmt"
	"time"

	"sales/src/sales/application/request"
	"sales/src/sales/application/response"
	"sales/src/sales/domain/port"

	"github.com/google/uuid"
)

// ListSalesUseCase caso de uso para listar ventas con paginación y filtros
type ListSalesUseCase struct {
	saleRepo port.SaleRepository
}

// NewListSalesUseCase crea una nueva instancia del caso de uso
func NewListSalesUseCase(saleRepo port.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// Execute retorna una página de ventas ordenadas por fecha descendente
func (uc *ListSalesUseCase) Execute(ctx context.Context, req *request.ListSalesRequest) (*response.ListSalesResponse, error) {
	filters, err := buildListFilters(req)
	if err != nil {
		return nil, err
	}

	sales, totalCount, err := uc.saleRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	items := make([]response.ListSaleItem, 0, len(sales))
	for _, sale := range sales {
		items = append(items, response.ListSaleItem{
			ID:          sale.ID,
			Number:      sale.Number,
			Date:        sale.Date,
			BranchName:  sale.BranchName,
			CustomerID:  sale.CustomerID,
			TotalAmount: sale.TotalAmount,
			IsCancelled: sale.IsCancelled,
		})
	}

	return &response.ListSalesResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
	}, nil
}

// buildListFilters parsea los filtros opcionales del request
func buildListFilters(req *request.ListSalesRequest) (port.ListSalesFilters, error) {
	filters := port.ListSalesFilters{
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if req.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return filters, fmt.Errorf("invalid start_date: %w", err)
		}
		filters.StartDate = &startDate
	}

	if req.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return filters, fmt.Errorf("invalid end_date: %w", err)
		}
		filters.EndDate = &endDate
	}

	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return filters, fmt.Errorf("invalid customer_id: %w", err)
		}
		filters.CustomerID = &customerID
	}

	return filters, nil
}
