package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

// newStore Store abierto con el documento semilla sobre almacenamiento en memoria.
func newStore(t *testing.T) *store.Store {
	t.Helper()
	gw := persistence.NewJSONGateway(kv.NewMemoryStore(), zerolog.Nop(), clock)
	st := store.New(gw, zerolog.Nop())
	require.NoError(t, st.Open(context.Background()))
	return st
}

func snapshot(t *testing.T, st *store.Store) *entity.Document {
	t.Helper()
	doc, err := st.Snapshot()
	require.NoError(t, err)
	return doc
}

// fakeActor sesión fija para los casos de uso.
type fakeActor struct {
	user      entity.User
	refreshed []entity.User
}

func actorFor(t *testing.T, st *store.Store, id string) *fakeActor {
	t.Helper()
	doc := snapshot(t, st)
	i := doc.FindUser(id)
	require.GreaterOrEqual(t, i, 0)
	return &fakeActor{user: doc.Users[i].WithoutPassword()}
}

func (a *fakeActor) CurrentUser() (entity.User, bool) { return a.user, a.user.ID != "" }

func (a *fakeActor) RefreshSnapshot(_ context.Context, u entity.User) error {
	if u.ID == a.user.ID {
		a.user = u.WithoutPassword()
		a.refreshed = append(a.refreshed, u)
	}
	return nil
}
