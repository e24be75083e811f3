package criteria

// FilterOperator representa el operador de comparación de un filtro
type FilterOperator string

const (
	OperatorEqual       FilterOperator = "="
	OperatorGreaterOrEq FilterOperator = ">="
	OperatorLessOrEq    FilterOperator = "<="
)

// OrderType representa la dirección de ordenamiento
type OrderType string

const (
	OrderAsc  OrderType = "ASC"
	OrderDesc OrderType = "DESC"
)

// Filter representa una condición individual sobre un campo
type Filter struct {
	Field    string
	Operator FilterOperator
	Value    interface{}
}

// Filters es la colección de condiciones de un criteria
type Filters struct {
	Items []Filter
}

// IsEmpty indica si no hay filtros definidos
func (f Filters) IsEmpty() bool {
	return len(f.Items) == 0
}

// Add agrega una condición a la colección
func (f *Filters) Add(field string, operator FilterOperator, value interface{}) {
	f.Items = append(f.Items, Filter{Field: field, Operator: operator, Value: value})
}

// Order representa el ordenamiento de un criteria
type Order struct {
	Field     string
	OrderType OrderType
}

// IsEmpty indica si no hay ordenamiento definido
func (o Order) IsEmpty() bool {
	return o.Field == ""
}

// Criteria describe filtros, orden y paginación de una consulta de listado
type Criteria struct {
	Filters Filters
	Order   Order
	Limit   *int
	Offset  *int
}

// NewCriteria crea un criteria vacío
func NewCriteria() Criteria {
	return Criteria{}
}

// WithOrder define el ordenamiento del criteria
func (c Criteria) WithOrder(field string, orderType OrderType) Criteria {
	c.Order = Order{Field: field, OrderType: orderType}
	return c
}

// WithPagination define limit y offset a partir de página y tamaño de página
func (c Criteria) WithPagination(page, pageSize int) Criteria {
	limit := pageSize
	offset := (page - 1) * pageSize
	c.Limit = &limit
	c.Offset = &offset
	return c
}
