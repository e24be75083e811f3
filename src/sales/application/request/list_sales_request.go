package request

// ListSalesRequest son los query params del listado de ventas
// Las fechas usan formato RFC3339; customer_id es un UUID
type ListSalesRequest struct {
	Page       int    `form:"page,default=1" binding:"gte=1"`
	PageSize   int    `form:"page_size,default=10" binding:"gte=1,lte=100"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	CustomerID string `form:"customer_id"`
}
