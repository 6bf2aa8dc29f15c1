package auth

import (
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// UserDirectory busca usuarios en el documento activo.
type UserDirectory interface {
	// ActiveByUsername devuelve los usuarios activos con ese nombre (normalmente uno).
	ActiveByUsername(username string) ([]entity.User, error)
	// ByID devuelve el usuario o nil.
	ByID(id string) (*entity.User, error)
}

type storeDirectory struct {
	st *store.Store
}

// NewStoreDirectory UserDirectory sobre el Store de dominio.
func NewStoreDirectory(st *store.Store) UserDirectory {
	return &storeDirectory{st: st}
}

func (d *storeDirectory) ActiveByUsername(username string) ([]entity.User, error) {
	var out []entity.User
	err := d.st.View(func(doc *entity.Document) error {
		for _, u := range doc.Users {
			if u.Username == username && u.IsActive {
				out = append(out, u)
			}
		}
		return nil
	})
	return out, err
}

func (d *storeDirectory) ByID(id string) (*entity.User, error) {
	var out *entity.User
	err := d.st.View(func(doc *entity.Document) error {
		if i := doc.FindUser(id); i >= 0 {
			u := doc.Users[i]
			out = &u
		}
		return nil
	})
	return out, err
}
