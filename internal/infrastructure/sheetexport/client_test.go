package sheetexport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/infrastructure/sheetexport"
)

// fakeSheetService servidor httptest que simula el servicio de hojas:
// clone → populate → export → delete, con contadores para las aserciones.
type fakeSheetService struct {
	t            *testing.T
	cloneNames   []string
	populated    map[string]string
	deleted      int
	failExport   bool
	failPopulate bool
}

func (f *fakeSheetService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/templates/tpl-aviso/clone", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		f.cloneNames = append(f.cloneNames, in.Name)
		json.NewEncoder(w).Encode(map[string]string{"id": "clone-123"})
	})
	mux.HandleFunc("PUT /api/sheets/clone-123/cells", func(w http.ResponseWriter, r *http.Request) {
		if f.failPopulate {
			http.Error(w, "celda bloqueada", http.StatusConflict)
			return
		}
		var in struct {
			Cells map[string]string `json:"cells"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		f.populated = in.Cells
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/sheets/clone-123/export", func(w http.ResponseWriter, r *http.Request) {
		if f.failExport {
			http.Error(w, "export temporalmente no disponible", http.StatusServiceUnavailable)
			return
		}
		assert.Equal(f.t, "pdf", r.URL.Query().Get("format"))
		w.Write([]byte("%PDF-1.7 contenido"))
	})
	mux.HandleFunc("DELETE /api/sheets/clone-123", func(w http.ResponseWriter, r *http.Request) {
		f.deleted++
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newClientFor(srv *httptest.Server) *sheetexport.Client {
	return sheetexport.NewClient(sheetexport.Config{
		BaseURL:    srv.URL + "/api",
		Token:      "token-de-prueba",
		TemplateID: "tpl-aviso",
	})
}

func datosDePrueba() apppayrun.NotificationData {
	return apppayrun.NotificationData{
		RowNum:       7,
		CompanyName:  "ABC商事",
		AgentName:    "Tanaka",
		PaymentMonth: "2026/08/01",
		Amount:       decimal.NewFromInt(250000),
		BankAccount:  "Banco Pacífico — Cta 012-345678",
		PeriodYYMM:   "2608",
	}
}

func TestRender_CicloCompleto(t *testing.T) {
	fake := &fakeSheetService{t: t}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	pdf, err := newClientFor(srv).RenderNotification(context.Background(), datosDePrueba())
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.7 contenido"), pdf)
	assert.Equal(t, 1, fake.deleted, "el clon debe borrarse tras el export")
	require.NotNil(t, fake.populated)
	assert.Equal(t, "ABC商事", fake.populated["B3"])
	assert.Equal(t, "Tanaka", fake.populated["B4"])
	assert.Equal(t, "2026/08/01", fake.populated["B5"])
	assert.Equal(t, "250000", fake.populated["B6"])
	assert.Equal(t, "2608", fake.populated["E2"])
}

func TestRender_NombreDeClonUnicoPorInvocacion(t *testing.T) {
	// La plantilla vive en un workspace compartido: dos renders no deben
	// producir clones con el mismo nombre.
	fake := &fakeSheetService{t: t}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	client := newClientFor(srv)

	_, err := client.RenderNotification(context.Background(), datosDePrueba())
	require.NoError(t, err)
	_, err = client.RenderNotification(context.Background(), datosDePrueba())
	require.NoError(t, err)

	require.Len(t, fake.cloneNames, 2)
	assert.NotEqual(t, fake.cloneNames[0], fake.cloneNames[1])
	assert.Contains(t, fake.cloneNames[0], "2608")
	assert.Contains(t, fake.cloneNames[0], "fila7")
}

func TestRender_ExportNo200_RetornaErrorYBorraClon(t *testing.T) {
	fake := &fakeSheetService{t: t, failExport: true}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	_, err := newClientFor(srv).RenderNotification(context.Background(), datosDePrueba())
	require.Error(t, err, "una respuesta no-200 del export debe propagarse como error de render")
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, 1, fake.deleted, "el clon se borra aunque el export falle")
}

func TestRender_PopulateFalla_NoExporta(t *testing.T) {
	fake := &fakeSheetService{t: t, failPopulate: true}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	_, err := newClientFor(srv).RenderNotification(context.Background(), datosDePrueba())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poblar celdas")
	assert.Equal(t, 1, fake.deleted)
}
