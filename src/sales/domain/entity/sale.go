package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCancellationWindow es la ventana máxima para cancelar una venta completa
const DefaultCancellationWindow = 30 * 24 * time.Hour

// Sale representa una venta (Aggregate Root)
// Toda mutación de items pasa por métodos del aggregate para sostener los invariantes:
//   - TotalAmount == suma de TotalAmount de los items activos
//   - una venta activa nunca queda con cero items activos
//   - una venta cancelada es terminal: no admite más mutaciones
type Sale struct {
	ID               uuid.UUID       `json:"id"`
	Number           string          `json:"number"`
	Date             time.Time       `json:"date"`
	BranchName       string          `json:"branch_name"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	IsCancelled      bool            `json:"is_cancelled"`
	CancellationDate *time.Time      `json:"cancellation_date,omitempty"`
	Items            []SaleItem      `json:"items"`
}

// SaleItemChange es un comando de edición bulk sobre los items de una venta:
// con ID y Cancelled → cancelar, con ID → actualizar, sin ID → agregar
type SaleItemChange struct {
	ID          *uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Cancelled   bool
}

// NewSale crea una nueva venta vacía (los items se agregan con AddItem)
func NewSale(number string, date time.Time, branchName string, customerID uuid.UUID) (*Sale, error) {
	if err := validateSaleHeader(branchName, customerID); err != nil {
		return nil, err
	}

	return &Sale{
		ID:          uuid.New(),
		Number:      number,
		Date:        date,
		BranchName:  branchName,
		CustomerID:  customerID,
		TotalAmount: decimal.Zero,
		IsCancelled: false,
		Items:       []SaleItem{},
	}, nil
}

func validateSaleHeader(branchName string, customerID uuid.UUID) error {
	if strings.TrimSpace(branchName) == "" {
		return ErrBranchNameRequired
	}
	if len(branchName) > 100 {
		return ErrBranchNameTooLong
	}
	if customerID == uuid.Nil {
		return ErrCustomerRequired
	}
	return nil
}

// AddItem agrega un item a la colección y recalcula el total
func (s *Sale) AddItem(item *SaleItem) error {
	if item == nil {
		return ErrNilSaleItem
	}
	if s.IsCancelled {
		return ErrSaleCancelled
	}

	item.SaleID = s.ID
	s.Items = append(s.Items, *item)
	s.RecalculateTotalAmount()

	return nil
}

// RecalculateTotalAmount deriva el total de la venta sumando los items activos
// Siempre es seguro de llamar; debe invocarse tras toda mutación de items
func (s *Sale) RecalculateTotalAmount() {
	total := decimal.Zero
	for i := range s.Items {
		if !s.Items[i].IsCancelled {
			total = total.Add(s.Items[i].TotalAmount)
		}
	}
	s.TotalAmount = total
}

// ActiveItemCount retorna la cantidad de items no cancelados
func (s *Sale) ActiveItemCount() int {
	count := 0
	for i := range s.Items {
		if !s.Items[i].IsCancelled {
			count++
		}
	}
	return count
}

// ActiveItems retorna los items no cancelados (copia, preserva orden de inserción)
func (s *Sale) ActiveItems() []SaleItem {
	items := make([]SaleItem, 0, len(s.Items))
	for i := range s.Items {
		if !s.Items[i].IsCancelled {
			items = append(items, s.Items[i])
		}
	}
	return items
}

// Cancel cancela la venta completa
// Falla si ya está cancelada o si la venta supera la ventana de cancelación
func (s *Sale) Cancel(window time.Duration) error {
	if s.IsCancelled {
		return ErrSaleAlreadyCancelled
	}
	if time.Since(s.Date) > window {
		return ErrSaleTooOld
	}

	now := time.Now().UTC()
	s.IsCancelled = true
	s.CancellationDate = &now

	return nil
}

// CancelItem cancela un item de la venta y recalcula el total
// Orden de chequeos: venta cancelada → item inexistente → item ya cancelado
// → último item activo (no se permite dejar la venta activa sin items)
func (s *Sale) CancelItem(itemID uuid.UUID) (*SaleItem, error) {
	if s.IsCancelled {
		return nil, ErrSaleCancelled
	}

	item := s.findItem(itemID)
	if item == nil {
		return nil, ErrSaleItemNotFound
	}
	if item.IsCancelled {
		return nil, ErrItemAlreadyCancelled
	}
	if s.ActiveItemCount() <= 1 {
		return nil, ErrLastActiveItem
	}

	if err := item.Cancel(); err != nil {
		return nil, err
	}
	s.RecalculateTotalAmount()

	return item, nil
}

// findItem busca un item por id dentro de la colección
func (s *Sale) findItem(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// ReplaceItems aplica una edición bulk de items (semántica del update de venta):
// cancela, actualiza o agrega según cada comando y valida recién al final
// que quede al menos un item activo
func (s *Sale) ReplaceItems(changes []SaleItemChange) error {
	if s.IsCancelled {
		return ErrSaleCancelled
	}

	for _, change := range changes {
		switch {
		case change.Cancelled:
			// Comandos de cancelación sin id o sobre items desconocidos se ignoran
			if change.ID == nil {
				continue
			}
			if item := s.findItem(*change.ID); item != nil && !item.IsCancelled {
				if err := item.Cancel(); err != nil {
					return err
				}
				s.RecalculateTotalAmount()
			}
		case change.ID != nil:
			if item := s.findItem(*change.ID); item != nil {
				if err := item.Update(change.ProductName, change.Quantity, change.UnitPrice); err != nil {
					return err
				}
				s.RecalculateTotalAmount()
			}
		default:
			item, err := NewSaleItem(s.ID, change.ProductName, change.Quantity, change.UnitPrice)
			if err != nil {
				return err
			}
			if err := s.AddItem(item); err != nil {
				return err
			}
		}
	}

	// Invariante bulk: la venta no puede quedar sin items activos
	if s.ActiveItemCount() == 0 {
		return ErrSaleMustHaveItems
	}

	return nil
}

// UpdateHeader reemplaza fecha, sucursal y cliente de la venta
// No toca items ni totales: estos campos no afectan el cálculo
func (s *Sale) UpdateHeader(date time.Time, branchName string, customerID uuid.UUID) error {
	if s.IsCancelled {
		return ErrSaleCancelled
	}
	if err := validateSaleHeader(branchName, customerID); err != nil {
		return err
	}

	s.Date = date
	s.BranchName = branchName
	s.CustomerID = customerID

	return nil
}
