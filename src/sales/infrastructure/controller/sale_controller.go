package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"sales/src/sales/application/request"
	"sales/src/sales/application/usecase"
	"sales/src/sales/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SaleController maneja las peticiones HTTP para sales
type SaleController struct {
	createSaleUC     *usecase.CreateSaleUseCase
	getSaleUC        *usecase.GetSaleUseCase
	listSalesUC      *usecase.ListSalesUseCase
	updateSaleUC     *usecase.UpdateSaleUseCase
	cancelSaleUC     *usecase.CancelSaleUseCase
	cancelSaleItemUC *usecase.CancelSaleItemUseCase
	deleteSaleUC     *usecase.DeleteSaleUseCase
}

// NewSaleController crea una nueva instancia del controlador
func NewSaleController(
	createSaleUC *usecase.CreateSaleUseCase,
	getSaleUC *usecase.GetSaleUseCase,
	listSalesUC *usecase.ListSalesUseCase,
	updateSaleUC *usecase.UpdateSaleUseCase,
	cancelSaleUC *usecase.CancelSaleUseCase,
	cancelSaleItemUC *usecase.CancelSaleItemUseCase,
	deleteSaleUC *usecase.DeleteSaleUseCase,
) *SaleController {
	return &SaleController{
		createSaleUC:     createSaleUC,
		getSaleUC:        getSaleUC,
		listSalesUC:      listSalesUC,
		updateSaleUC:     updateSaleUC,
		cancelSaleUC:     cancelSaleUC,
		cancelSaleItemUC: cancelSaleItemUC,
		deleteSaleUC:     deleteSaleUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *SaleController) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/sales")
	{
		sales.GET("", c.ListSales)
		sales.POST("", c.CreateSale)
		sales.GET("/:sale_id", c.GetSale)
		sales.PUT("/:sale_id", c.UpdateSale)
		sales.DELETE("/:sale_id", c.DeleteSale)
		sales.POST("/:sale_id/cancel", c.CancelSale)
		sales.POST("/:sale_id/items/:item_id/cancel", c.CancelSaleItem)
	}

	log.Println("Rutas Sale disponibles:")
	log.Println("  GET    /api/v1/sales")
	log.Println("  POST   /api/v1/sales")
	log.Println("  GET    /api/v1/sales/:sale_id")
	log.Println("  PUT    /api/v1/sales/:sale_id")
	log.Println("  DELETE /api/v1/sales/:sale_id")
	log.Println("  POST   /api/v1/sales/:sale_id/cancel")
	log.Println("  POST   /api/v1/sales/:sale_id/items/:item_id/cancel")
}

// CreateSale maneja la creación de una venta
func (c *SaleController) CreateSale(ctx *gin.Context) {
	// 1. Identidad del cliente (ya autenticada por el gateway)
	customerID, ok := customerIDFromHeader(ctx)
	if !ok {
		return
	}

	// 2. Validar body
	var req request.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	// 3. Ejecutar use case
	resp, err := c.createSaleUC.Execute(ctx.Request.Context(), customerID, &req)
	if err != nil {
		log.Printf("Error creating sale: %v", err)
		respondDomainError(ctx, err)
		return
	}

	// 4. Responder exitosamente con 201 Created
	ctx.JSON(http.StatusCreated, resp)
}

// GetSale maneja la obtención de una venta por ID
func (c *SaleController) GetSale(ctx *gin.Context) {
	saleID, ok := saleIDFromPath(ctx)
	if !ok {
		return
	}

	resp, err := c.getSaleUC.Execute(ctx.Request.Context(), saleID)
	if err != nil {
		log.Printf("Error getting sale: %v", err)
		respondDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListSales maneja el listado de ventas con paginación y filtros
func (c *SaleController) ListSales(ctx *gin.Context) {
	// 1. Validar query params
	var req request.ListSalesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	// 2. Ejecutar use case
	resp, err := c.listSalesUC.Execute(ctx.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing sales: %v", err)

		// Filtros no parseables → request inválido
		if strings.Contains(err.Error(), "invalid ") {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateSale maneja la edición completa de una venta (header + items)
func (c *SaleController) UpdateSale(ctx *gin.Context) {
	// 1. Identidad del cliente y venta target
	customerID, ok := customerIDFromHeader(ctx)
	if !ok {
		return
	}
	saleID, ok := saleIDFromPath(ctx)
	if !ok {
		return
	}

	// 2. Validar body
	var req request.UpdateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	// 3. Ejecutar use case
	resp, err := c.updateSaleUC.Execute(ctx.Request.Context(), saleID, customerID, &req)
	if err != nil {
		log.Printf("Error updating sale: %v", err)
		respondDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CancelSale maneja la cancelación de una venta completa
func (c *SaleController) CancelSale(ctx *gin.Context) {
	saleID, ok := saleIDFromPath(ctx)
	if !ok {
		return
	}

	if err := c.cancelSaleUC.Execute(ctx.Request.Context(), saleID); err != nil {
		log.Printf("Error cancelling sale: %v", err)
		respondDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sale_id":      saleID,
		"is_cancelled": true,
	})
}

// CancelSaleItem maneja la cancelación de un item individual
func (c *SaleController) CancelSaleItem(ctx *gin.Context) {
	saleID, ok := saleIDFromPath(ctx)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(ctx.Param("item_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id format"})
		return
	}

	if err := c.cancelSaleItemUC.Execute(ctx.Request.Context(), saleID, itemID); err != nil {
		log.Printf("Error cancelling sale item: %v", err)
		respondDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sale_id":      saleID,
		"item_id":      itemID,
		"is_cancelled": true,
	})
}

// DeleteSale maneja la eliminación física de una venta
func (c *SaleController) DeleteSale(ctx *gin.Context) {
	saleID, ok := saleIDFromPath(ctx)
	if !ok {
		return
	}

	if err := c.deleteSaleUC.Execute(ctx.Request.Context(), saleID); err != nil {
		log.Printf("Error deleting sale: %v", err)
		respondDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// customerIDFromHeader extrae y valida el header X-Customer-ID (OBLIGATORIO)
func customerIDFromHeader(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.GetHeader("X-Customer-ID")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Customer-ID header is required"})
		return uuid.Nil, false
	}

	customerID, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid X-Customer-ID format"})
		return uuid.Nil, false
	}

	return customerID, true
}

// saleIDFromPath extrae y valida el sale_id del path
func saleIDFromPath(ctx *gin.Context) (uuid.UUID, bool) {
	saleID, err := uuid.Parse(ctx.Param("sale_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_id format"})
		return uuid.Nil, false
	}
	return saleID, true
}

// respondBindingError responde 400 con detalle por campo cuando el binding falla
func respondBindingError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, gin.H{
				"field": fe.Field(),
				"rule":  fe.Tag(),
			})
		}
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request body",
			"fields": details,
		})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// respondDomainError mapea el tipo de error de dominio al status HTTP:
// validación → 400, not found → 404, ya cancelado / regla de negocio /
// conflicto de número → 409, resto → 500
func respondDomainError(ctx *gin.Context, err error) {
	switch {
	case entity.IsValidationError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case entity.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case entity.IsAlreadyCancelled(err), entity.IsRuleViolation(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrDuplicateSaleNumber):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal error",
			"details": err.Error(),
		})
	}
}
