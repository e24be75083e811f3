package entity

import "errors"

// Errores de validación: input malformado, corregible por el caller
var (
	ErrBranchNameRequired = errors.New("branch_name is required")
	ErrBranchNameTooLong  = errors.New("branch_name must not exceed 100 characters")
	ErrCustomerRequired   = errors.New("customer_id is required")

	ErrProductNameRequired = errors.New("product_name is required")
	ErrProductNameTooLong  = errors.New("product_name must not exceed 100 characters")
	ErrInvalidQuantity     = errors.New("quantity must be greater than 0")
	ErrQuantityTooLarge    = errors.New("cannot sell more than 20 identical items")
	ErrInvalidUnitPrice    = errors.New("unit_price must be greater than 0")

	ErrNilSaleItem = errors.New("sale item cannot be nil")
)

// Errores de not-found: el recurso referenciado no existe
var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSaleItemNotFound = errors.New("sale item not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Errores de idempotencia: el target ya está en estado terminal
var (
	ErrSaleAlreadyCancelled = errors.New("sale is already cancelled")
	ErrItemAlreadyCancelled = errors.New("this item is already cancelled")
)

// Errores de reglas de negocio: la operación rompería un invariante
var (
	ErrSaleCancelled     = errors.New("cannot modify a cancelled sale")
	ErrSaleTooOld        = errors.New("sales older than the cancellation window cannot be cancelled")
	ErrLastActiveItem    = errors.New("cannot cancel the only active item in a sale, consider cancelling the entire sale instead")
	ErrSaleMustHaveItems = errors.New("sale must have at least one active item")
	ErrUserNotCustomer   = errors.New("user is not a customer")
)

// Errores de integridad / conflicto
var (
	// ErrCorruptSaleNumber indica un sufijo de sale number no parseable en la DB
	ErrCorruptSaleNumber = errors.New("stored sale number has an invalid sequence suffix")
	// ErrDuplicateSaleNumber lo emite el repositorio cuando el unique index
	// de number rechaza el commit (dos escritores generaron el mismo número)
	ErrDuplicateSaleNumber = errors.New("sale number already exists")
)

var validationErrors = []error{
	ErrBranchNameRequired,
	ErrBranchNameTooLong,
	ErrCustomerRequired,
	ErrProductNameRequired,
	ErrProductNameTooLong,
	ErrInvalidQuantity,
	ErrQuantityTooLarge,
	ErrInvalidUnitPrice,
	ErrNilSaleItem,
}

var notFoundErrors = []error{
	ErrSaleNotFound,
	ErrSaleItemNotFound,
	ErrUserNotFound,
}

var alreadyCancelledErrors = []error{
	ErrSaleAlreadyCancelled,
	ErrItemAlreadyCancelled,
}

var ruleViolationErrors = []error{
	ErrSaleCancelled,
	ErrSaleTooOld,
	ErrLastActiveItem,
	ErrSaleMustHaveItems,
	ErrUserNotCustomer,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidationError indica si el error es de validación de input
func IsValidationError(err error) bool { return matchesAny(err, validationErrors) }

// IsNotFound indica si el error es de recurso inexistente
func IsNotFound(err error) bool { return matchesAny(err, notFoundErrors) }

// IsAlreadyCancelled indica si el target ya estaba cancelado
func IsAlreadyCancelled(err error) bool { return matchesAny(err, alreadyCancelledErrors) }

// IsRuleViolation indica si la operación violaría una regla de negocio
func IsRuleViolation(err error) bool { return matchesAny(err, ruleViolationErrors) }
