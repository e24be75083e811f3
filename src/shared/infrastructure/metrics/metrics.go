package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio expuestos en /metrics
var (
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_created_total",
		Help: "Total de ventas creadas",
	})

	SalesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_cancelled_total",
		Help: "Total de ventas canceladas",
	})

	SaleItemsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sale_items_cancelled_total",
		Help: "Total de items de venta cancelados individualmente",
	})

	SaleNumberConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sale_number_conflicts_total",
		Help: "Total de colisiones de sale number detectadas por el unique index",
	})
)
