package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/biocol-import-api/internal/application/analytics"
	"github.com/jhoicas/biocol-import-api/internal/application/auth"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/metrics"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/pdf"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/biocol-import-api/internal/interfaces/http"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de teste: store em memória com os dados de demonstração, relógio fixo
// em 2025-03-01.
// ──────────────────────────────────────────────────────────────────────────────

const (
	demoEmail    = "magnus@biocol.com.br"
	demoPassword = "demo123"
)

type testServer struct {
	app   *fiber.App
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	_, err := seed.Load(ctx, memory.SeedRepositories(store))
	require.NoError(t, err)

	clk := clock.Fixed(time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC), time.UTC)
	runner := memory.NewTxRunner(store)
	shipments := memory.NewShipmentRepository(store)
	history := memory.NewStatusHistoryRepository(store)
	invoices := memory.NewInvoiceRepository(store)
	references := memory.NewReferenceRepository(store)
	admissions := memory.NewAdmissionRepository(store)
	prom := metrics.NewPrometheus()

	authUC, err := auth.NewAuthUseCase(
		auth.DemoUser{Email: demoEmail, Password: demoPassword, Name: "Magnus"},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AdmissionUC:  entreposto.NewAdmissionUseCase(runner, admissions, shipments, invoices, prom, nil, clk),
		WithdrawalUC: entreposto.NewWithdrawalUseCase(runner, admissions, memory.NewWithdrawalRepository(store), pdf.NewReceiptGenerator("Biocol"), prom, nil, clk),
		ShipmentUC:   usecase.NewShipmentUseCase(runner, shipments, history, invoices, references, clk),
		InvoiceUC:    usecase.NewInvoiceUseCase(runner, invoices, shipments, clk),
		ReferenceUC:  usecase.NewReferenceUseCase(references, clk),
		DashboardUC:  appanalytics.NewDashboardUseCase(memory.NewDashboardRepository(store), clk),
		AuthUC:       authUC,
		JWTSecret:    testJWTSecret,
		Metrics:      prom.Handler(),
	})

	srv := &testServer{app: app}
	var login dto.LoginResponse
	resp := srv.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: demoEmail, Password: demoPassword}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	srv.token = login.Token
	return srv
}

// do envia a requisição autenticada; se out != nil decodifica o corpo JSON nele.
func (s *testServer) do(t *testing.T, method, path string, body, out interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func errorOf(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	srv := newTestServer(t)
	srv.token = ""

	resp := srv.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: demoEmail, Password: "errada"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: demoEmail}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRotasProtegidas_ExigemToken(t *testing.T) {
	srv := newTestServer(t)
	srv.token = ""

	resp := srv.do(t, http.MethodGet, "/api/entrepostos", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorOf(t, resp).Code)
}

func TestMe_DevolveOperadorDoToken(t *testing.T) {
	srv := newTestServer(t)

	var me dto.UserResponse
	resp := srv.do(t, http.MethodGet, "/api/auth/me", nil, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, demoEmail, me.Email)
	assert.Equal(t, entity.RoleCoordinator, me.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entreposto
// ──────────────────────────────────────────────────────────────────────────────

func TestEntreposto_SaldoERetirada(t *testing.T) {
	srv := newTestServer(t)
	ent1 := seed.ID("admission:ent1")
	yd := seed.ID("balance:ent1:1")

	var bal dto.BalanceResponse
	resp := srv.do(t, http.MethodGet, "/api/entrepostos/"+ent1+"/saldo", nil, &bal)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DA-2025-0001", bal.DeclarationNumber)
	assert.Equal(t, entity.AdmissionStatusActive, bal.Status)
	require.Len(t, bal.Items, 2)
	assert.True(t, bal.Items[0].QuantityAvailable.Equal(d("9760")))

	// excesso: 400 com o produto na mensagem e saldo intacto
	resp = srv.do(t, http.MethodPost, "/api/entrepostos/"+ent1+"/retiradas", dto.WithdrawalRequest{
		Items: []dto.WithdrawalLineRequest{{BalanceItemID: yd, Quantity: d("9761")}},
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := errorOf(t, resp)
	assert.Equal(t, "INSUFFICIENT_BALANCE", e.Code)
	assert.Contains(t, e.Message, "YD-8238")

	var w dto.WithdrawalDTO
	resp = srv.do(t, http.MethodPost, "/api/entrepostos/"+ent1+"/retiradas", dto.WithdrawalRequest{
		DocumentNumber: "DF-2025-0100",
		Items:          []dto.WithdrawalLineRequest{{BalanceItemID: yd, Quantity: d("760")}},
	}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DF-2025-0100", w.DocumentNumber)
	assert.Equal(t, entity.AdmissionStatusActive, w.AdmissionStatus)

	resp = srv.do(t, http.MethodGet, "/api/entrepostos/"+ent1+"/saldo/disponivel", nil, &bal)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, bal.Items, 2)
	assert.True(t, bal.Items[0].QuantityAvailable.Equal(d("9000")))

	var history []dto.WithdrawalDTO
	resp = srv.do(t, http.MethodGet, "/api/entrepostos/"+ent1+"/retiradas", nil, &history)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, history, 3)
	assert.Equal(t, w.ID, history[0].ID)

	resp = srv.do(t, http.MethodGet, "/api/entrepostos/"+ent1+"/retiradas/"+w.ID+"/comprovante", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "DF-2025-0100")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	// contador de retiradas exposto no /metrics
	resp = srv.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `biocol_withdrawals_total{result="accepted"} 1`)
	assert.Contains(t, string(raw), `biocol_withdrawals_total{result="insufficient_balance"} 1`)
}

func TestEntreposto_CriaDAAPartirDaInvoice(t *testing.T) {
	srv := newTestServer(t)
	ship3 := seed.ID("shipment:3")

	var inv dto.InvoiceDTO
	resp := srv.do(t, http.MethodPost, "/api/embarques/"+ship3+"/invoices", dto.CreateInvoiceRequest{
		Number:     "ETC-2025-0042",
		TotalValue: d("12000"),
		Items: []dto.InvoiceItemRequest{
			{ProductCode: "RES-100", Unit: "KG", Quantity: d("4000"), NetWeight: d("4000"), UnitValue: d("3")},
		},
	}, &inv)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "EUR", inv.Currency)

	var a dto.AdmissionDTO
	resp = srv.do(t, http.MethodPost, "/api/entrepostos", dto.CreateAdmissionRequest{
		ShipmentID:        ship3,
		WarehouseType:     entity.WarehouseTypeCLIA,
		DeclarationNumber: "DA-2025-0003",
		RegistrationDate:  "2025-02-27",
	}, &a)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "2025-08-26", a.ExpiryDate)
	require.Len(t, a.Items, 1)
	assert.True(t, a.Items[0].QuantityAvailable.Equal(d("4000")))

	// mesmo número de D.A.: conflito
	resp = srv.do(t, http.MethodPost, "/api/entrepostos", dto.CreateAdmissionRequest{
		ShipmentID:        ship3,
		WarehouseType:     entity.WarehouseTypeCLIA,
		DeclarationNumber: "DA-2025-0003",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var sh dto.ShipmentDTO
	resp = srv.do(t, http.MethodGet, "/api/embarques/"+ship3, nil, &sh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.ShipmentStatusWarehouseEntry, sh.Status)

	var byShipment []dto.AdmissionDTO
	resp = srv.do(t, http.MethodGet, "/api/embarques/"+ship3+"/entrepostos", nil, &byShipment)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, byShipment, 1)
	assert.Equal(t, a.ID, byShipment[0].ID)
}

func TestEntreposto_ComprovanteNomeEscapado(t *testing.T) {
	srv := newTestServer(t)
	ent1 := seed.ID("admission:ent1")

	var w dto.WithdrawalDTO
	resp := srv.do(t, http.MethodPost, "/api/entrepostos/"+ent1+"/retiradas", dto.WithdrawalRequest{
		DocumentNumber: `DF"; x="y`,
		Items:          []dto.WithdrawalLineRequest{{BalanceItemID: seed.ID("balance:ent1:1"), Quantity: d("1")}},
	}, &w)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/entrepostos/"+ent1+"/retiradas/"+w.ID+"/comprovante", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	disposition, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Len(t, params, 1, "parâmetros extras no header: %v", params)
	assert.NotContains(t, params["filename"], `"`)
	assert.True(t, strings.HasSuffix(params["filename"], ".pdf"))
}

func TestEntreposto_Erros(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/entrepostos/nao-existe", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorOf(t, resp).Code)

	resp = srv.do(t, http.MethodPost, "/api/entrepostos", dto.CreateAdmissionRequest{
		ShipmentID:        seed.ID("shipment:3"),
		WarehouseType:     "PORTO",
		DeclarationNumber: "DA-X",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorOf(t, resp).Code)

	for _, reg := range []string{"9999-12-31", "0001-01-01"} {
		resp = srv.do(t, http.MethodPost, "/api/entrepostos", dto.CreateAdmissionRequest{
			ShipmentID:        seed.ID("shipment:3"),
			WarehouseType:     entity.WarehouseTypeCLIA,
			DeclarationNumber: "DA-X",
			RegistrationDate:  reg,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, reg)
		assert.Equal(t, "VALIDATION", errorOf(t, resp).Code, reg)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/entrepostos", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+srv.token)
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorOf(t, resp).Code)
}

func TestEntreposto_Listagem(t *testing.T) {
	srv := newTestServer(t)

	var page dto.AdmissionListResponse
	resp := srv.do(t, http.MethodGet, "/api/entrepostos?warehouse_type=EADI", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "DA-2025-0002", page.Items[0].DeclarationNumber)
	assert.Equal(t, 1, page.Page.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Embarques e kanban
// ──────────────────────────────────────────────────────────────────────────────

func TestEmbarques_KanbanEHistorico(t *testing.T) {
	srv := newTestServer(t)
	ship3 := seed.ID("shipment:3")

	var statuses []dto.StatusOptionDTO
	resp := srv.do(t, http.MethodGet, "/api/status", nil, &statuses)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, statuses, len(entity.ShipmentStatuses))

	var sh dto.ShipmentDTO
	resp = srv.do(t, http.MethodPatch, "/api/embarques/"+ship3+"/status", dto.ChangeStatusRequest{
		Status: entity.ShipmentStatusLoadedOnBoard,
		Notes:  "BL emitido",
	}, &sh)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.ShipmentStatusLoadedOnBoard, sh.Status)
	assert.Equal(t, "Carregado Bordo", sh.StatusLabel)

	resp = srv.do(t, http.MethodPatch, "/api/embarques/"+ship3+"/status", dto.ChangeStatusRequest{Status: "VOANDO"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var hist []dto.StatusChangeDTO
	resp = srv.do(t, http.MethodGet, "/api/embarques/"+ship3+"/historico", nil, &hist)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, hist)
	assert.Equal(t, entity.ShipmentStatusPreShipment, hist[0].PreviousStatus)
	assert.Equal(t, entity.ShipmentStatusLoadedOnBoard, hist[0].NewStatus)

	var counts []dto.StatusCountDTO
	resp = srv.do(t, http.MethodGet, "/api/dashboard/status-overview", nil, &counts)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, counts, len(entity.ShipmentStatuses))
}

func TestEmbarques_CriarListarRemover(t *testing.T) {
	srv := newTestServer(t)

	var created dto.ShipmentDTO
	resp := srv.do(t, http.MethodPost, "/api/embarques", dto.CreateShipmentRequest{
		Reference:    "BIO-2025-010",
		ImportType:   entity.ImportTypeViaTrade,
		BusinessUnit: entity.BusinessUnitSantaCatarina,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.ShipmentStatusPreShipment, created.Status)
	assert.Equal(t, "USD", created.Currency)

	resp = srv.do(t, http.MethodPost, "/api/embarques", dto.CreateShipmentRequest{
		Reference:    "BIO-2025-010",
		ImportType:   entity.ImportTypeViaTrade,
		BusinessUnit: entity.BusinessUnitSantaCatarina,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var page dto.ShipmentListResponse
	resp = srv.do(t, http.MethodGet, "/api/embarques?search=bio-2025-010", nil, &page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	// embarque com D.A. não pode ser removido
	resp = srv.do(t, http.MethodDelete, "/api/embarques/"+seed.ID("shipment:1"), nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = srv.do(t, http.MethodDelete, "/api/embarques/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = srv.do(t, http.MethodGet, "/api/embarques/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cadastros e dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestCadastros_EscritaExigePapel(t *testing.T) {
	srv := newTestServer(t)

	var carriers []dto.ReferenceDTO
	resp := srv.do(t, http.MethodGet, "/api/cadastros/armadores", nil, &carriers)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, carriers, 5)

	resp = srv.do(t, http.MethodPost, "/api/cadastros/armadores", dto.ReferenceRequest{Code: "ONE", Name: "Ocean Network Express"}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/cadastros/navios", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// operador só lê
	srv.token = tokenForRole(t, entity.RoleOperator)[len("Bearer "):]
	resp = srv.do(t, http.MethodPost, "/api/cadastros/armadores", dto.ReferenceRequest{Code: "ZIM", Name: "ZIM"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = srv.do(t, http.MethodGet, "/api/cadastros/armadores", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDashboard_Metricas(t *testing.T) {
	srv := newTestServer(t)

	var m dto.DashboardMetricsDTO
	resp := srv.do(t, http.MethodGet, "/api/dashboard/metrics", nil, &m)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, m.TotalShipments)
	assert.Equal(t, 2, m.ActiveAdmissions)
	assert.True(t, m.TotalFreight.Equal(d("174468.80")))

	var actions []dto.UpcomingActionDTO
	resp = srv.do(t, http.MethodGet, "/api/dashboard/proximas-acoes", nil, &actions)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, a := range actions {
		assert.Contains(t, []string{"entreposto", "embarque"}, a.Type)
	}
}
