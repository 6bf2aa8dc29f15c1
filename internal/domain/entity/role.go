package entity

import "slices"

// Permission token que habilita una operación concreta.
type Permission string

const (
	PermViewSales        Permission = "view_sales"
	PermCreateSales      Permission = "create_sales"
	PermViewProducts     Permission = "view_products"
	PermManageProducts   Permission = "manage_products"
	PermViewUsers        Permission = "view_users"
	PermManageUsers      Permission = "manage_users"
	PermViewStats        Permission = "view_stats"
	PermManageCategories Permission = "manage_categories"
)

// Role agrupa permisos. La tabla es estática: no se persiste ni se modifica en ejecución.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []Permission
}

var roleTable = []Role{
	{
		ID:          "1",
		Name:        RoleAdmin,
		Description: "Administrateur complet",
		Permissions: []Permission{
			PermViewSales, PermCreateSales, PermViewProducts, PermManageProducts,
			PermViewUsers, PermManageUsers, PermViewStats, PermManageCategories,
		},
	},
	{
		ID:          "2",
		Name:        RoleManager,
		Description: "Gestionnaire",
		Permissions: []Permission{
			PermViewSales, PermCreateSales, PermViewProducts, PermManageProducts,
			PermViewStats, PermManageCategories,
		},
	},
	{
		ID:          "3",
		Name:        RoleEmployee,
		Description: "Employé de vente",
		Permissions: []Permission{PermViewSales, PermCreateSales, PermViewProducts},
	},
}

// Roles devuelve una copia de la tabla de roles.
func Roles() []Role {
	out := make([]Role, len(roleTable))
	for i, r := range roleTable {
		r.Permissions = slices.Clone(r.Permissions)
		out[i] = r
	}
	return out
}

// RoleByName busca un rol por nombre.
func RoleByName(name string) (Role, bool) {
	for _, r := range roleTable {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// IsValidRole indica si name es uno de los tres roles.
func IsValidRole(name string) bool {
	_, ok := RoleByName(name)
	return ok
}

// Has indica si el rol incluye el permiso.
func (r Role) Has(p Permission) bool {
	return slices.Contains(r.Permissions, p)
}

// RoleHasPermission atajo sobre la tabla estática; roles desconocidos no tienen permisos.
func RoleHasPermission(roleName string, p Permission) bool {
	r, ok := RoleByName(roleName)
	return ok && r.Has(p)
}
