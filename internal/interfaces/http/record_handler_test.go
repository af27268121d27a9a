package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Avisos-pago-api/internal/interfaces/http"
	"github.com/jhoicas/Avisos-pago-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de la tabla compartida para los handlers
// ──────────────────────────────────────────────────────────────────────────────

type memRepo struct {
	rows map[int]*entity.PaymentRecord
}

func newMemRepo(recs ...*entity.PaymentRecord) *memRepo {
	r := &memRepo{rows: make(map[int]*entity.PaymentRecord)}
	for _, rec := range recs {
		r.rows[rec.RowNum] = rec
	}
	return r
}

func (r *memRepo) ListAll(context.Context) ([]*entity.PaymentRecord, error) {
	out := make([]*entity.PaymentRecord, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RowNum < out[j].RowNum })
	return out, nil
}

func (r *memRepo) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.PaymentRecord, error) {
	all, _ := r.ListAll(ctx)
	var out []*entity.PaymentRecord
	for _, rec := range all {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo) GetByRow(_ context.Context, rowNum int) (*entity.PaymentRecord, error) {
	rec, ok := r.rows[rowNum]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (r *memRepo) UpdateStatusIf(_ context.Context, rowNum int, from, to entity.Status) (bool, error) {
	rec, ok := r.rows[rowNum]
	if !ok || rec.Status != from {
		return false, nil
	}
	rec.Status = to
	rec.UpdatedAt = time.Now()
	return true, nil
}

func filaDePago(row int, status entity.Status) *entity.PaymentRecord {
	return &entity.PaymentRecord{
		RowNum:         row,
		CompanyName:    "ABC商事",
		AgentName:      "Tanaka",
		PaymentMonth:   "2026/08/01",
		Amount:         decimal.NewFromInt(250000),
		RecipientEmail: "pagos@proveedor.example",
		Status:         status,
	}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// buildRecordsApp app Fiber con las rutas de records protegidas por JWT,
// igual que en el router real.
func buildRecordsApp(repo *memRepo) *fiber.App {
	app := fiber.New()
	h := apphttp.NewRecordHandler(repo, apppayrun.NewApproveUseCase(repo, quietLogger()))
	grp := app.Group("/api/records", apphttp.AuthMiddleware(testJWTSecret))
	grp.Get("/", h.List)
	grp.Get("/:row", h.GetByRow)
	grp.Post("/:row/approve", h.Approve)
	return app
}

func doAuth(t *testing.T, app *fiber.App, method, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", operatorToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByRow
// ──────────────────────────────────────────────────────────────────────────────

func TestRecords_List(t *testing.T) {
	app := buildRecordsApp(newMemRepo(
		filaDePago(2, entity.StatusPendingApproval),
		filaDePago(3, entity.StatusSent),
	))
	resp := doAuth(t, app, http.MethodGet, "/api/records/")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 2)
	assert.Equal(t, "pending-approval", out[0]["status"])
}

func TestRecords_List_FiltroPorEstado(t *testing.T) {
	app := buildRecordsApp(newMemRepo(
		filaDePago(2, entity.StatusPendingApproval),
		filaDePago(3, entity.StatusSent),
	))
	resp := doAuth(t, app, http.MethodGet, "/api/records/?status=sent")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, float64(3), out[0]["row_num"])
}

func TestRecords_List_EstadoDesconocido_400(t *testing.T) {
	app := buildRecordsApp(newMemRepo())
	resp := doAuth(t, app, http.MethodGet, "/api/records/?status=enviadas")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecords_GetByRow_NoExiste_404(t *testing.T) {
	app := buildRecordsApp(newMemRepo())
	resp := doAuth(t, app, http.MethodGet, "/api/records/99")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve — la compuerta humana vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestRecords_Approve_DesdePending_200(t *testing.T) {
	repo := newMemRepo(filaDePago(2, entity.StatusPendingApproval))
	app := buildRecordsApp(repo)

	resp := doAuth(t, app, http.MethodPost, "/api/records/2/approve")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "approved-for-sending", out["status"])
	assert.Equal(t, testOperator, out["approved_by"],
		"la identidad del token debe quedar en la respuesta de auditoría")
	assert.Equal(t, entity.StatusApprovedForSending, repo.rows[2].Status)
}

func TestRecords_Approve_FilaEnBlanco_409(t *testing.T) {
	repo := newMemRepo(filaDePago(2, entity.StatusBlank))
	app := buildRecordsApp(repo)

	resp := doAuth(t, app, http.MethodPost, "/api/records/2/approve")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"una fila nunca generada no puede aprobarse")
	assert.Equal(t, entity.StatusBlank, repo.rows[2].Status)
}

func TestRecords_Approve_FilaSent_409(t *testing.T) {
	repo := newMemRepo(filaDePago(2, entity.StatusSent))
	app := buildRecordsApp(repo)

	resp := doAuth(t, app, http.MethodPost, "/api/records/2/approve")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRecords_Approve_NoExiste_404(t *testing.T) {
	app := buildRecordsApp(newMemRepo())
	resp := doAuth(t, app, http.MethodPost, "/api/records/99/approve")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecords_SinToken_401(t *testing.T) {
	app := buildRecordsApp(newMemRepo())
	req := httptest.NewRequest(http.MethodGet, "/api/records/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
