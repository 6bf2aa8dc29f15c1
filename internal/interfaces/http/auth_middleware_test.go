package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salmichou-pos/internal/application/auth"
	"github.com/jhoicas/salmichou-pos/internal/application/exchange"
	"github.com/jhoicas/salmichou-pos/internal/application/ports"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
	"github.com/jhoicas/salmichou-pos/internal/domain/repository"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/kv"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
	apphttp "github.com/jhoicas/salmichou-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/salmichou-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "salmichou-test"
)

type testEnv struct {
	app   *fiber.App
	store *store.Store
}

// buildTestApp monta el router completo sobre almacenamiento en memoria.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	st := store.New(persistence.NewJSONGateway(kv.NewMemoryStore(), log, time.Now), log)
	require.NoError(t, st.Open(ctx))
	prefs := persistence.NewPreferencesRepository(kv.NewMemoryStore(), log)

	sessions := kv.NewMemoryStore()
	factory := func(id string) repository.KeyValueStore { return kv.Namespace(sessions, "session:"+id+":") }
	authUC := auth.NewAuthUseCase(factory, auth.NewStoreDirectory(st), prefs,
		auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer}, log, nil)

	sales := usecase.NewSaleUseCase(st, time.Now)
	manager := exchange.NewManager(st, log, time.Now)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(st, auth.SchemePlain, time.Now),
		ProductUC:     usecase.NewProductUseCase(st, 10, time.Now),
		CategoryUC:    usecase.NewCategoryUseCase(st),
		SaleUC:        sales,
		ReceiptUC:     usecase.NewReceiptUseCase(sales, prefs, pdf.NewMarotoReceiptGenerator(), ports.ShopInfo{Name: "SalmichouLayette"}),
		StatisticsUC:  usecase.NewStatisticsUseCase(st, 10),
		PreferencesUC: usecase.NewPreferencesUseCase(prefs),
		MaintenanceUC: usecase.NewMaintenanceUseCase(st, log, time.Now),
		Exchange:      manager,
		Scheduler:     exchange.NewScheduler(manager, prefs, afero.NewMemMapFs(), "/backups", log),
	})
	return &testEnv{app: app, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login abre sesión y devuelve el token.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"mauvais"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CuerpoIncompleto(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "VALIDATION")
}

func TestAuthMiddleware_SinAuthHeader(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/api/auth/me", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/api/auth/me", "token.invalido.aqui", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token válido cuya sesión nunca se abrió no restaura nada.
func TestAuthMiddleware_SesionInexistente(t *testing.T) {
	env := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "sesion-fantasma", "1", "admin", testIssuer, time.Now().Add(time.Hour))
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/auth/me", tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MeYLogout(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "vendeur", "vend123")

	resp := env.do(t, http.MethodGet, "/api/auth/me", tok, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		User        map[string]any `json:"user"`
		Permissions []string       `json:"permissions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "vendeur", me.User["username"])
	assert.NotContains(t, me.User, "password")
	assert.Equal(t, []string{"view_sales", "create_sales", "view_products"}, me.Permissions)

	out := env.do(t, http.MethodPost, "/api/auth/logout", tok, "")
	out.Body.Close()
	assert.Equal(t, http.StatusNoContent, out.StatusCode)

	after := env.do(t, http.MethodGet, "/api/auth/me", tok, "")
	after.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, after.StatusCode, "la sesión cerrada ya no se restaura")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission / RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_EmpleadoSinGestionUsuarios(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "vendeur", "vend123")

	resp := env.do(t, http.MethodGet, "/api/users", tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequirePermission_AdminListaUsuarios(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "admin", "admin123")

	resp := env.do(t, http.MethodGet, "/api/users?active=true", tok, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := bodyString(t, resp)
	assert.Contains(t, body, "gestionnaire")
	assert.NotContains(t, body, "admin123")
}

func TestRequireRole_GestorNoPuedeReiniciar(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "gestionnaire", "gest123")

	resp := env.do(t, http.MethodPost, "/api/reset", tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujos a través del router
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_AutoEliminacionDevuelve403(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "admin", "admin123")

	resp := env.do(t, http.MethodDelete, "/api/users/1", tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SELF_MODIFICATION")

	doc, err := env.store.Snapshot()
	require.NoError(t, err)
	assert.Len(t, doc.Users, 3)
}

func TestSales_EmpleadoRegistraVentaYTicket(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "vendeur", "vend123")

	resp := env.do(t, http.MethodPost, "/api/sales", tok, `{"items":[{"product_id":"1","quantity":3}],"payment_method":"cash"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale struct {
		ID          string  `json:"id"`
		TotalAmount float64 `json:"total_amount"`
		EmployeeID  string  `json:"employee_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))
	assert.Equal(t, float64(30000), sale.TotalAmount)
	assert.Equal(t, "3", sale.EmployeeID)

	doc, err := env.store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 22, doc.Products[0].Quantity)

	receipt := env.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", tok, "")
	defer receipt.Body.Close()
	require.Equal(t, http.StatusOK, receipt.StatusCode)
	assert.Equal(t, "application/pdf", receipt.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(bodyString(t, receipt), "%PDF"))
}

func TestSales_MedioDePagoInvalido(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "vendeur", "vend123")

	resp := env.do(t, http.MethodPost, "/api/sales", tok, `{"items":[{"product_id":"1","quantity":1}],"payment_method":"cheque"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImport_AutoProductosPorHTTP(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "admin", "admin123")

	resp := env.do(t, http.MethodPost, "/api/import", tok,
		`{"type":"products","version":"1.0","data":[{"id":"p1","name":"Bonnet","price":3500,"costPrice":1500,"quantity":12,"category":"vêtements"}]}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), `"products":1`)

	doc, err := env.store.Snapshot()
	require.NoError(t, err)
	require.Len(t, doc.Products, 1)
	assert.Len(t, doc.Users, 3)

	bad := env.do(t, http.MethodPost, "/api/import", tok, `{"type":`)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Contains(t, bodyString(t, bad), "PARSE_ERROR")
}

func TestExport_UsuariosSinContrasenas(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "admin", "admin123")

	resp := env.do(t, http.MethodGet, "/api/export/users", tok, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "salmichou_users_")
	assert.NotContains(t, bodyString(t, resp), "password")
}

func TestHealth(t *testing.T) {
	env := buildTestApp(t)
	resp := env.do(t, http.MethodGet, "/health", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestImport_UsuariosSinLaCuentaEnUsoPorHTTP(t *testing.T) {
	env := buildTestApp(t)
	tok := env.login(t, "admin", "admin123")

	resp := env.do(t, http.MethodPost, "/api/import?type=users", tok,
		`{"data":[{"id":"3","username":"vendeur","role":"employee","name":"V","isActive":true}]}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SELF_MODIFICATION")

	doc, err := env.store.Snapshot()
	require.NoError(t, err)
	assert.Len(t, doc.Users, 3)
}
