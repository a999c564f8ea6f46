package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre un directorio temporal
// ──────────────────────────────────────────────────────────────────────────────

const (
	seedUsuarios = `[
  {"id": 1, "nombre": "Ana", "apellido": "Pérez", "email": "ana@x.com", "contrasena": "1234"},
  {"id": 2, "nombre": "Beto", "apellido": "Ruiz", "email": "beto@x.com", "contrasena": "1234"},
  {"id": 3, "nombre": "Dani", "apellido": "Sosa", "email": "dani@x.com", "contrasena": "1234", "activo": false}
]`
	seedProductos = `[
  {"id": 1, "nombre": "Café", "desc": "Café de origen", "precio": 1000, "categoria": "bebidas"},
  {"id": 2, "nombre": "Pan", "desc": "Pan blanco", "precio": 500, "categoria": "panaderia"}
]`
)

type testAPI struct {
	app   *fiber.App
	store *filestore.Store
}

func newTestAPI(t *testing.T, loginPerMinute int) *testAPI {
	t.Helper()
	store, err := filestore.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(filestore.CollectionUsuarios), []byte(seedUsuarios), 0o644))
	require.NoError(t, os.WriteFile(store.Path(filestore.CollectionProductos), []byte(seedProductos), 0o644))

	productRepo := filestore.NewProductRepository(store)
	userRepo := filestore.NewUserRepository(store)
	saleRepo := filestore.NewSaleRepository(store)
	txRunner := filestore.NewTxRunner(store)

	deps := apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(productRepo),
		UserUC:    usecase.NewUserUseCase(userRepo, txRunner),
		AuthUC: auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CreateSaleUC: sales.NewCreateSaleUseCase(txRunner, saleRepo, sales.Config{PagadoDefault: true}),
		ReceiptUC:    sales.NewReceiptUseCase(saleRepo, userRepo, productRepo, infrapdf.NewMarotoReceiptGenerator("Tienda")),
	}
	if loginPerMinute > 0 {
		limiter := apphttp.PerMinute(loginPerMinute)
		t.Cleanup(limiter.Close)
		deps.LoginLimiter = limiter
	}

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, deps)
	return &testAPI{app: app, store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func ventaBody(items ...map[string]any) map[string]any {
	return map[string]any{"direccion": "Calle Falsa 123", "productos": items}
}

func linea(id, cantidad int) map[string]any {
	return map[string]any{"id_producto": id, "cantidad": cantidad}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearVenta_201ConTotalCalculado(t *testing.T) {
	api := newTestAPI(t, 0)
	body := ventaBody(linea(1, 2), linea(2, 2))
	body["id_usuario"] = 2
	body["total"] = 1

	resp := api.do(t, http.MethodPost, "/api/ventas", body, bearer(t, 1, "ana@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	decode(t, resp, &out)
	assert.Equal(t, float64(1), out["id"])
	assert.Equal(t, float64(1), out["id_usuario"], "el usuario sale del token, no del cuerpo")
	assert.Equal(t, float64(3000), out["total"])
	assert.Equal(t, true, out["pagado"])
	assert.Len(t, out["productos"], 2)
}

func TestCrearVenta_SinToken401(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCrearVenta_TokenInvalido403(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), "Bearer x.y.z")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCrearVenta_ProductoInexistente400(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(999, 1)), bearer(t, 1, "ana@x.com"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	decode(t, resp, &out)
	assert.Contains(t, out["message"], "999")

	_, err := os.Stat(api.store.Path(filestore.CollectionVentas))
	assert.True(t, os.IsNotExist(err), "no se escribe el ledger")
}

func TestCrearVenta_CuerpoInvalido400(t *testing.T) {
	api := newTestAPI(t, 0)
	req := httptest.NewRequest(http.MethodPost, "/api/ventas", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, 1, "ana@x.com"))
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCrearVenta_UsuarioDelTokenInexistente404(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), bearer(t, 50, "x@x.com"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCrearVenta_UsuarioInactivo403(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), bearer(t, 3, "dani@x.com"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestListarVentas_FiltroPorUsuarioYDetalle(t *testing.T) {
	api := newTestAPI(t, 0)
	for _, id := range []int{1, 2, 1} {
		resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(2, 1)), bearer(t, id, ""))
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var all []map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/ventas", nil, ""), &all)
	assert.Len(t, all, 3)

	var mine []map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/ventas?id_usuario=1", nil, ""), &mine)
	assert.Len(t, mine, 2)

	resp := api.do(t, http.MethodGet, "/api/ventas/2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var one map[string]any
	decode(t, resp, &one)
	assert.Equal(t, float64(2), one["id_usuario"])

	resp = api.do(t, http.MethodGet, "/api/ventas/99", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListarVentas_FiltroInvalido400(t *testing.T) {
	api := newTestAPI(t, 0)
	for _, q := range []string{"abc", "0", "-1", "1.5"} {
		resp := api.do(t, http.MethodGet, "/api/ventas?id_usuario="+q, nil, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "id_usuario=%s", q)
		var out map[string]string
		decode(t, resp, &out)
		assert.Equal(t, "INVALID_ID", out["code"])
	}
}

func TestListarVentas_LedgerVacio(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodGet, "/api/ventas", nil, "")
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, "[]", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestComprobante_PDFSoloParaElComprador(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), bearer(t, 1, "ana@x.com"))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/ventas/1/comprobante", nil, bearer(t, 1, "ana@x.com"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "comprobante-venta-1.pdf")
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = api.do(t, http.MethodGet, "/api/ventas/1/comprobante", nil, bearer(t, 2, "beto@x.com"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminarUsuario_ConVentas409(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), bearer(t, 1, "ana@x.com"))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/usuarios/1", nil, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var out map[string]string
	decode(t, resp, &out)
	assert.Equal(t, "USER_HAS_SALES", out["code"])

	resp = api.do(t, http.MethodDelete, "/api/usuarios/2", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/usuarios/2", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/usuarios/abc", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCrearUsuario(t *testing.T) {
	api := newTestAPI(t, 0)
	body := map[string]any{"nombre": "Eva", "apellido": "Luna", "email": "eva@x.com", "password": "clave-1"}

	resp := api.do(t, http.MethodPost, "/api/usuarios", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out map[string]any
	decode(t, resp, &out)
	assert.Equal(t, float64(4), out["id"])
	assert.NotContains(t, out, "passwordHash", "la respuesta no expone credenciales")

	resp = api.do(t, http.MethodPost, "/api/usuarios", body, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "email repetido")

	resp = api.do(t, http.MethodPost, "/api/usuarios", map[string]any{"email": "z@x.com"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	larga := map[string]any{"nombre": "Eva", "apellido": "Luna", "email": "eva2@x.com", "password": strings.Repeat("x", 80)}
	resp = api.do(t, http.MethodPost, "/api/usuarios", larga, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "contraseña de más de 72 bytes")
	var verr map[string]string
	decode(t, resp, &verr)
	assert.Equal(t, "VALIDATION", verr["code"])

	resp = api.do(t, http.MethodPut, "/api/usuarios/1", map[string]any{"password": strings.Repeat("x", 80)}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActualizarYObtenerUsuario(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodPut, "/api/usuarios/2", map[string]any{"nombre": "Roberto", "id": 99}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	decode(t, resp, &out)
	assert.Equal(t, float64(2), out["id"], "el id no cambia")
	assert.Equal(t, "Roberto", out["nombre"])

	var got map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/usuarios/2", nil, ""), &got)
	assert.Equal(t, "Roberto", got["nombre"])
	assert.NotContains(t, got, "contrasena")

	var list []map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/usuarios", nil, ""), &list)
	assert.Len(t, list, 3)

	resp = api.do(t, http.MethodGet, "/api/usuarios/77", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_ListaYFiltro(t *testing.T) {
	api := newTestAPI(t, 0)

	var all []map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/productos", nil, ""), &all)
	assert.Len(t, all, 2)

	var bebidas []map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/productos?categoria=bebidas", nil, ""), &bebidas)
	require.Len(t, bebidas, 1)
	assert.Equal(t, "Café", bebidas[0]["nombre"])
	assert.Equal(t, float64(1000), bebidas[0]["precio"])

	var one map[string]any
	decode(t, api.do(t, http.MethodGet, "/api/productos/2", nil, ""), &one)
	assert.Equal(t, "Pan", one["nombre"])

	resp := api.do(t, http.MethodGet, "/api/productos/9", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Respuestas(t *testing.T) {
	api := newTestAPI(t, 0)

	resp := api.do(t, http.MethodPost, "/api/login", map[string]string{"email": "ana@x.com", "password": "1234"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	decode(t, resp, &out)
	assert.Equal(t, "Login correcto", out["mensaje"])
	token, _ := out["token"].(string)
	require.NotEmpty(t, token)

	// El token emitido sirve para crear ventas
	resp = api.do(t, http.MethodPost, "/api/ventas", ventaBody(linea(1, 1)), "Bearer "+token)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/login", map[string]string{"email": "ana@x.com", "password": "mal"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/login", map[string]string{"email": "dani@x.com", "password": "1234"}, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogin_LimitePorIP429(t *testing.T) {
	api := newTestAPI(t, 2)
	creds := map[string]string{"email": "ana@x.com", "password": "mal"}

	for i := 0; i < 2; i++ {
		resp := api.do(t, http.MethodPost, "/api/login", creds, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
	resp := api.do(t, http.MethodPost, "/api/login", creds, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRequestLogger_AsignaRequestID(t *testing.T) {
	api := newTestAPI(t, 0)
	resp := api.do(t, http.MethodGet, "/api/productos", nil, "")
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}
