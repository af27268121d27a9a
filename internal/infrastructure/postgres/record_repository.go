package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo implementación de RecordRepository sobre la tabla payment_records.
type RecordRepo struct {
	pool *pgxpool.Pool
}

// NewRecordRepository construye el adaptador.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepo {
	return &RecordRepo{pool: pool}
}

const recordColumns = `
	row_num, company_name, agent_name, payment_month, amount,
	bank_account, check_value, recipient_email, status, updated_at`

// ListAll devuelve todas las filas ordenadas por posición.
func (r *RecordRepo) ListAll(ctx context.Context) ([]*entity.PaymentRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM payment_records ORDER BY row_num`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByStatus devuelve las filas cuyo estado coincide exactamente, ordenadas por posición.
func (r *RecordRepo) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.PaymentRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM payment_records WHERE status = $1 ORDER BY row_num`
	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list records by status: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetByRow obtiene una fila por posición, o (nil, nil) si no existe.
func (r *RecordRepo) GetByRow(ctx context.Context, rowNum int) (*entity.PaymentRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM payment_records WHERE row_num = $1`
	rec, err := scanRecord(r.pool.QueryRow(ctx, query, rowNum))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// UpdateStatusIf avanza el estado solo si la fila sigue en el estado esperado.
// El WHERE sobre status es el update optimista de todo el flujo: si otra
// corrida (o un humano) movió la fila, RowsAffected es 0 y se devuelve false.
func (r *RecordRepo) UpdateStatusIf(ctx context.Context, rowNum int, from, to entity.Status) (bool, error) {
	query := `
		UPDATE payment_records
		SET status = $3, updated_at = now()
		WHERE row_num = $1 AND status = $2`
	tag, err := r.pool.Exec(ctx, query, rowNum, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("update record status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Upsert inserta o reemplaza una fila (usado por cmd/importsheet).
// El estado existente se conserva en conflicto: el import refresca los datos
// de la hoja sin retroceder filas ya procesadas.
func (r *RecordRepo) Upsert(ctx context.Context, rec *entity.PaymentRecord) error {
	query := `
		INSERT INTO payment_records
			(row_num, company_name, agent_name, payment_month, amount,
			 bank_account, check_value, recipient_email, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (row_num) DO UPDATE SET
			company_name    = EXCLUDED.company_name,
			agent_name      = EXCLUDED.agent_name,
			payment_month   = EXCLUDED.payment_month,
			amount          = EXCLUDED.amount,
			bank_account    = EXCLUDED.bank_account,
			check_value     = EXCLUDED.check_value,
			recipient_email = EXCLUDED.recipient_email,
			updated_at      = now()`
	_, err := r.pool.Exec(ctx, query,
		rec.RowNum, rec.CompanyName, rec.AgentName, rec.PaymentMonth, rec.Amount,
		rec.BankAccount, rec.CheckValue, rec.RecipientEmail, string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// ── Scan helpers ──────────────────────────────────────────────────────────────

func scanRecord(row pgx.Row) (*entity.PaymentRecord, error) {
	var rec entity.PaymentRecord
	var status string
	err := row.Scan(
		&rec.RowNum, &rec.CompanyName, &rec.AgentName, &rec.PaymentMonth, &rec.Amount,
		&rec.BankAccount, &rec.CheckValue, &rec.RecipientEmail, &status, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// El texto crudo se conserva aunque no pertenezca al conjunto cerrado:
	// las corridas lo rechazan vía ParseStatus y lo reportan.
	rec.Status = entity.Status(status)
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]*entity.PaymentRecord, error) {
	var out []*entity.PaymentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
