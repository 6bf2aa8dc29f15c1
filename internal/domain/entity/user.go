package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// User representa una cuenta del punto de venta. Las etiquetas JSON son las del documento
// persistido y de los sobres de exportación (camelCase), compartidas con el cliente web.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"` // texto plano en memoria, ofuscado en reposo
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WithoutPassword devuelve una copia sin credencial (snapshots de sesión, exportaciones).
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
