package payrun_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	"github.com/jhoicas/Avisos-pago-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos del flujo
// ──────────────────────────────────────────────────────────────────────────────

// testLogger logger silencioso para los tests (solo errores).
func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// relojAgosto fija el "mes en curso" de las corridas en agosto 2026.
func relojAgosto() time.Time {
	return time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)
}

// fakeRecordRepo tabla compartida en memoria con update condicional real.
type fakeRecordRepo struct {
	rows map[int]*entity.PaymentRecord
}

func newFakeRepo(recs ...*entity.PaymentRecord) *fakeRecordRepo {
	r := &fakeRecordRepo{rows: make(map[int]*entity.PaymentRecord)}
	for _, rec := range recs {
		r.rows[rec.RowNum] = rec
	}
	return r
}

func (r *fakeRecordRepo) ListAll(context.Context) ([]*entity.PaymentRecord, error) {
	out := make([]*entity.PaymentRecord, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RowNum < out[j].RowNum })
	return out, nil
}

func (r *fakeRecordRepo) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.PaymentRecord, error) {
	all, _ := r.ListAll(ctx)
	var out []*entity.PaymentRecord
	for _, rec := range all {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) GetByRow(_ context.Context, rowNum int) (*entity.PaymentRecord, error) {
	rec, ok := r.rows[rowNum]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (r *fakeRecordRepo) UpdateStatusIf(_ context.Context, rowNum int, from, to entity.Status) (bool, error) {
	rec, ok := r.rows[rowNum]
	if !ok || rec.Status != from {
		return false, nil
	}
	rec.Status = to
	rec.UpdatedAt = time.Now()
	return true, nil
}

// estado lee el estado actual de una fila del fake.
func (r *fakeRecordRepo) estado(rowNum int) entity.Status {
	return r.rows[rowNum].Status
}

// fakeRenderer renderer que devuelve bytes fijos; failRows simula fallos de
// render por fila (ej. respuesta no-200 del servicio de export).
type fakeRenderer struct {
	calls    int
	failRows map[int]bool
}

func (f *fakeRenderer) RenderNotification(_ context.Context, data apppayrun.NotificationData) ([]byte, error) {
	f.calls++
	if f.failRows[data.RowNum] {
		return nil, fmt.Errorf("render: respuesta 500 del servicio de export")
	}
	return []byte("%PDF-fake " + data.CompanyName), nil
}

// fakeStore almacenamiento de documentos en memoria, clave carpeta/nombre.
type fakeStore struct {
	files map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{files: make(map[string][]byte)} }

func (s *fakeStore) key(folder, name string) string { return folder + "/" + name }

func (s *fakeStore) Write(_ context.Context, folder, name string, data []byte) error {
	s.files[s.key(folder, name)] = data
	return nil
}

func (s *fakeStore) Exists(_ context.Context, folder, name string) (bool, error) {
	_, ok := s.files[s.key(folder, name)]
	return ok, nil
}

func (s *fakeStore) Read(_ context.Context, folder, name string) ([]byte, error) {
	data, ok := s.files[s.key(folder, name)]
	if !ok {
		return nil, fmt.Errorf("archivo %s/%s no existe", folder, name)
	}
	return data, nil
}

// fakeMailer registra los mensajes enviados; failTo simula fallos SMTP por
// destinatario.
type fakeMailer struct {
	sent   []apppayrun.OutboundMessage
	failTo map[string]bool
}

func newFakeMailer() *fakeMailer { return &fakeMailer{failTo: make(map[string]bool)} }

func (m *fakeMailer) Send(_ context.Context, msg apppayrun.OutboundMessage) error {
	if m.failTo[msg.To] {
		return fmt.Errorf("smtp: conexión rechazada")
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de filas de prueba
// ──────────────────────────────────────────────────────────────────────────────

func fila(row int, agente, empresa, mes, check string, status entity.Status) *entity.PaymentRecord {
	return &entity.PaymentRecord{
		RowNum:         row,
		CompanyName:    empresa,
		AgentName:      agente,
		PaymentMonth:   mes,
		Amount:         decimal.NewFromInt(250000),
		BankAccount:    "Banco Pacífico — Cta 012-345678",
		CheckValue:     check,
		RecipientEmail: fmt.Sprintf("pagos+fila%d@proveedor.example", row),
		Status:         status,
	}
}
