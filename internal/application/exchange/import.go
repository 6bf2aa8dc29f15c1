package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/salmichou-pos/internal/application/dto"
	"github.com/jhoicas/salmichou-pos/internal/domain"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/pkg/obfuscate"
)

// collections contenido decodificado de una importación; nil significa "no presente".
type collections struct {
	products   []entity.Product
	categories []entity.Category
	sales      []entity.Sale
	users      []entity.User
}

func (c collections) counts() map[string]int {
	out := map[string]int{}
	if c.products != nil {
		out[TypeProducts] = len(c.products)
	}
	if c.categories != nil {
		out[TypeCategories] = len(c.categories)
	}
	if c.sales != nil {
		out[TypeSales] = len(c.sales)
	}
	if c.users != nil {
		out[TypeUsers] = len(c.users)
	}
	return out
}

// Import aplica raw según importType (auto, products, categories, sales, users, full).
// Cada colección importada reemplaza entera a la actual. JSON mal formado: domain.ErrParse;
// contenido sin la forma esperada: domain.ErrValidation. Con error no se aplica nada.
func (m *Manager) Import(ctx context.Context, raw []byte, importType string) (*dto.ImportResult, error) {
	return m.ImportAs(ctx, "", raw, importType)
}

// ImportAs es Import ejecutado por una sesión. Si la importación trae usuarios, el de actorID
// debe seguir presente y activo; si no, domain.ErrSelfModification. Un actorID vacío
// (herramientas sin sesión) omite esa comprobación.
func (m *Manager) ImportAs(ctx context.Context, actorID string, raw []byte, importType string) (*dto.ImportResult, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	actual, err := resolveType(importType, root)
	if err != nil {
		return nil, err
	}

	var in collections
	if actual == ImportFull {
		in, err = decodeFull(root)
	} else {
		in, err = decodeTyped(actual, root)
	}
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := keepsActor(in.users, actorID); err != nil {
		return nil, err
	}

	err = m.store.Commit(ctx, func(doc *entity.Document) error {
		if in.users != nil {
			in.users = keepStoredPasswords(in.users, doc.Users)
			doc.Users = in.users
		}
		if in.products != nil {
			doc.Products = in.products
		}
		if in.categories != nil {
			doc.Categories = in.categories
		}
		if in.sales != nil {
			doc.Sales = in.sales
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	counts := in.counts()
	m.log.Info().Str("type", actual).Interface("counts", counts).Msg("importación aplicada")
	return &dto.ImportResult{
		Success: true,
		Message: fmt.Sprintf("Données importées avec succès (%s)", actual),
		Type:    actual,
		Counts:  counts,
	}, nil
}

// resolveType traduce "auto" según el campo type del sobre; un type ausente o desconocido
// se trata como importación completa.
func resolveType(importType string, root map[string]json.RawMessage) (string, error) {
	switch importType {
	case "", ImportAuto:
	case TypeProducts, TypeCategories, TypeSales, TypeUsers, ImportFull:
		return importType, nil
	case TypeFullBackup:
		return ImportFull, nil
	default:
		return "", fmt.Errorf("%w: tipo de importación %q", domain.ErrInvalidInput, importType)
	}

	var typ string
	if t, ok := root["type"]; ok {
		_ = json.Unmarshal(t, &typ)
	}
	switch typ {
	case TypeProducts, TypeCategories, TypeSales, TypeUsers:
		return typ, nil
	default:
		return ImportFull, nil
	}
}

// decodeTyped toma data o, en documentos antiguos, la clave de nivel superior de la colección.
func decodeTyped(typ string, root map[string]json.RawMessage) (collections, error) {
	src, ok := present(root, "data")
	if !ok {
		src, ok = present(root, typ)
	}
	if !ok {
		return collections{}, fmt.Errorf("%w: %s: no hay datos que importar", domain.ErrValidation, typ)
	}
	var c collections
	if err := decodeCollection(typ, src, &c); err != nil {
		return collections{}, err
	}
	return c, nil
}

// decodeFull lee las colecciones de data o, si data no es un objeto, de la raíz. Las colecciones
// ausentes se conservan.
func decodeFull(root map[string]json.RawMessage) (collections, error) {
	container := root
	if data, ok := present(root, "data"); ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err != nil {
			return collections{}, fmt.Errorf("%w: data no es un objeto", domain.ErrValidation)
		}
		container = inner
	}

	var c collections
	found := false
	for _, typ := range []string{TypeProducts, TypeCategories, TypeSales, TypeUsers} {
		src, ok := present(container, typ)
		if !ok {
			continue
		}
		if err := decodeCollection(typ, src, &c); err != nil {
			return collections{}, err
		}
		found = true
	}
	if !found {
		return collections{}, fmt.Errorf("%w: el documento no contiene ninguna colección", domain.ErrValidation)
	}
	return c, nil
}

func decodeCollection(typ string, src json.RawMessage, c *collections) error {
	if trimmed := bytes.TrimSpace(src); len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: %s debe ser una lista", domain.ErrValidation, typ)
	}
	var err error
	switch typ {
	case TypeProducts:
		c.products, err = decodeList[entity.Product](src)
	case TypeCategories:
		c.categories, err = decodeList[entity.Category](src)
	case TypeSales:
		c.sales, err = decodeList[entity.Sale](src)
		for i := range c.sales {
			if c.sales[i].Items == nil {
				c.sales[i].Items = []entity.SaleItem{}
			}
		}
	case TypeUsers:
		c.users, err = decodeList[entity.User](src)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrValidation, typ, err)
	}
	return nil
}

func decodeList[T any](src json.RawMessage) ([]T, error) {
	out := []T{}
	if err := json.Unmarshal(src, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// present devuelve el valor de key si existe y no es null.
func present(m map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := m[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// validate revisa todas las colecciones presentes antes de tocar el documento. Los id vacíos o
// repetidos romperían la clave primaria de los gateways relacionales.
func (c collections) validate() error {
	var errs []error
	errs = append(errs, checkIDs(TypeProducts, c.products, func(p entity.Product) string { return p.ID })...)
	errs = append(errs, checkIDs(TypeCategories, c.categories, func(x entity.Category) string { return x.ID })...)
	errs = append(errs, checkIDs(TypeSales, c.sales, func(x entity.Sale) string { return x.ID })...)
	errs = append(errs, checkIDs(TypeUsers, c.users, func(u entity.User) string { return u.ID })...)
	errs = append(errs, checkUsers(c.users)...)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}

func checkIDs[T any](typ string, items []T, id func(T) string) []error {
	var errs []error
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		v := strings.TrimSpace(id(item))
		switch {
		case v == "":
			errs = append(errs, fmt.Errorf("%s %d: id vacío", typ, i+1))
		case seen[v]:
			errs = append(errs, fmt.Errorf("%s %d: id %q duplicado", typ, i+1, v))
		}
		seen[v] = true
	}
	return errs
}

// keepsActor impide que una importación de usuarios deje fuera, o inactiva, la cuenta que importa.
func keepsActor(users []entity.User, actorID string) error {
	if users == nil || actorID == "" {
		return nil
	}
	for _, u := range users {
		if u.ID == actorID {
			if !u.IsActive {
				return fmt.Errorf("%w: la importación desactiva la cuenta en uso", domain.ErrSelfModification)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: la importación elimina la cuenta en uso", domain.ErrSelfModification)
}

// checkUsers exige username no vacío, rol conocido y unicidad sin distinguir mayúsculas.
func checkUsers(users []entity.User) []error {
	var errs []error
	seen := map[string]bool{}
	for i, u := range users {
		name := strings.ToLower(strings.TrimSpace(u.Username))
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("usuario %d: username vacío", i+1))
		case seen[name]:
			errs = append(errs, fmt.Errorf("usuario %d: username %q duplicado", i+1, u.Username))
		}
		seen[name] = true
		if !entity.IsValidRole(u.Role) {
			errs = append(errs, fmt.Errorf("usuario %d: rol %q desconocido", i+1, u.Role))
		}
	}
	return errs
}

// keepStoredPasswords conserva la contraseña actual de los usuarios importados sin ella
// (las exportaciones nunca la incluyen). Las contraseñas ofuscadas se revelan porque el
// documento en memoria las guarda en claro.
func keepStoredPasswords(imported, current []entity.User) []entity.User {
	stored := make(map[string]string, len(current))
	for _, u := range current {
		stored[u.ID] = u.Password
	}
	for i := range imported {
		if imported[i].Password == "" {
			imported[i].Password = stored[imported[i].ID]
			continue
		}
		imported[i].Password = obfuscate.Reveal(imported[i].Password)
	}
	return imported
}
