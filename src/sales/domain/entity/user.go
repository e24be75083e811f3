package entity

import "github.com/google/uuid"

// UserRole representa el rol de un usuario
type UserRole string

const (
	UserRoleCustomer UserRole = "Customer"
	UserRoleManager  UserRole = "Manager"
	UserRoleAdmin    UserRole = "Admin"
)

// User representa un usuario externo al contexto de ventas
// Solo los usuarios con rol Customer pueden ser dueños de una venta
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  UserRole  `json:"role"`
}

// IsCustomer indica si el usuario puede actuar como cliente de una venta
func (u *User) IsCustomer() bool {
	return u.Role == UserRoleCustomer
}
