package entity

import (
	"slices"
	"time"
)

// Document es la unidad de persistencia: todo el estado del negocio se guarda y se carga junto.
type Document struct {
	Users      []User     `json:"users"`
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	Sales      []Sale     `json:"sales"`
	LastSave   time.Time  `json:"lastSave"`
}

// Normalize reemplaza colecciones nulas por vacías (documentos antiguos o parciales).
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	if d.Sales == nil {
		d.Sales = []Sale{}
	}
}

// Clone copia profunda; las ventas también copian sus líneas.
func (d *Document) Clone() *Document {
	out := &Document{
		Users:      slices.Clone(d.Users),
		Products:   slices.Clone(d.Products),
		Categories: slices.Clone(d.Categories),
		Sales:      make([]Sale, len(d.Sales)),
		LastSave:   d.LastSave,
	}
	for i, s := range d.Sales {
		s.Items = slices.Clone(s.Items)
		out.Sales[i] = s
	}
	out.Normalize()
	return out
}

// FindUser devuelve el índice del usuario con ese id o -1.
func (d *Document) FindUser(id string) int {
	return slices.IndexFunc(d.Users, func(u User) bool { return u.ID == id })
}

// FindProduct devuelve el índice del producto con ese id o -1.
func (d *Document) FindProduct(id string) int {
	return slices.IndexFunc(d.Products, func(p Product) bool { return p.ID == id })
}

// FindCategory devuelve el índice de la categoría con ese id o -1.
func (d *Document) FindCategory(id string) int {
	return slices.IndexFunc(d.Categories, func(c Category) bool { return c.ID == id })
}
