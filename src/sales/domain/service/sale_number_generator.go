package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sales/src/sales/domain/entity"
)

// saleNumberDateLayout es el prefijo de fecha YYYYMMDD del sale number
const saleNumberDateLayout = "20060102"

// LastSaleNumberLookup es la consulta mínima que necesita el generador
// (la implementa port.SaleRepository)
type LastSaleNumberLookup interface {
	GetLastSaleNumberByDatePrefix(ctx context.Context, datePrefix string) (string, error)
}

// SaleNumberGenerator genera sale numbers secuenciales por día: SALE-YYYYMMDD-0001
//
// El generador solo PROPONE el próximo número: lee el último emitido y suma uno,
// sin reserva atómica. Dos creaciones concurrentes el mismo día pueden proponer
// el mismo número; el unique index de number en la DB rechaza al segundo writer
// con entity.ErrDuplicateSaleNumber y el caller reintenta la generación
type SaleNumberGenerator struct {
	lookup LastSaleNumberLookup
}

// NewSaleNumberGenerator crea un nuevo generador de sale numbers
func NewSaleNumberGenerator(lookup LastSaleNumberLookup) *SaleNumberGenerator {
	return &SaleNumberGenerator{lookup: lookup}
}

// NextNumber propone el próximo sale number para la fecha de referencia
// Un sufijo no parseable en el último número almacenado es corrupción de datos:
// se propaga entity.ErrCorruptSaleNumber sin reintentar
func (g *SaleNumberGenerator) NextNumber(ctx context.Context, referenceDate time.Time) (string, error) {
	datePrefix := referenceDate.Format(saleNumberDateLayout)

	lastNumber, err := g.lookup.GetLastSaleNumberByDatePrefix(ctx, datePrefix)
	if err != nil {
		return "", fmt.Errorf("error looking up last sale number for prefix %s: %w", datePrefix, err)
	}

	sequence := 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		lastSequence, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return "", fmt.Errorf("%w: %q", entity.ErrCorruptSaleNumber, lastNumber)
		}
		sequence = lastSequence + 1
	}

	return fmt.Sprintf("SALE-%s-%04d", datePrefix, sequence), nil
}
