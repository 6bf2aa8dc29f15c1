package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedDocument documento inicial de una tienda nueva. Las contraseñas van en texto plano;
// el gateway las ofusca al guardar.
func SeedDocument(now time.Time) *Document {
	now = now.UTC()
	user := func(id, username, password, role, name string) User {
		return User{ID: id, Username: username, Password: password, Role: role, Name: name,
			IsActive: true, CreatedAt: now, UpdatedAt: now}
	}
	product := func(id, name, desc string, price, cost int64, qty int, cat, size, color string) Product {
		return Product{ID: id, Name: name, Description: desc,
			Price: decimal.NewFromInt(price), CostPrice: decimal.NewFromInt(cost),
			Quantity: qty, Category: cat, Size: size, Color: color,
			CreatedAt: now, UpdatedAt: now}
	}

	admin := user("1", "admin", "admin123", RoleAdmin, "Administrateur Principal")
	admin.Email = "admin@salmichou.cm"
	manager := user("2", "gestionnaire", "gest123", RoleManager, "Gestionnaire Boutique")
	manager.Email = "gestion@salmichou.cm"
	seller := user("3", "vendeur", "vend123", RoleEmployee, "Vendeur Principal")
	seller.Phone = "+237 6XX XX XX XX"

	return &Document{
		Users: []User{admin, manager, seller},
		Products: []Product{
			product("1", "Body bébé coton", "Body 100% coton bio", 10000, 5500, 25, "vêtements", "0-3 mois", "Blanc"),
			product("2", "Pyjama grenouillère", "Pyjama chaud velours", 19500, 9800, 15, "vêtements", "3-6 mois", "Bleu"),
			product("3", "Couches taille 2", "Lot de 24 couches", 8500, 4500, 50, "couches", "3-6 kg", "Blanc"),
		},
		Categories: []Category{
			{ID: "1", Name: "vêtements", Description: "Vêtements pour bébé"},
			{ID: "2", Name: "couches", Description: "Couches et changes"},
			{ID: "3", Name: "puériculture", Description: "Articles de puériculture"},
		},
		Sales:    []Sale{},
		LastSave: now,
	}
}
