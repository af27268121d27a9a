package repository

import (
	"context"

	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
)

// RecordRepository puerto de acceso a la tabla compartida de pagos.
//
// UpdateStatusIf es la única escritura del flujo: actualiza el estado solo si
// la fila todavía está en el estado esperado (update condicional). Devuelve
// false sin error cuando otra corrida o un humano ya la movió; el caller la
// cuenta como omitida en lugar de pisar el cambio ajeno.
type RecordRepository interface {
	// ListAll devuelve todas las filas ordenadas por posición.
	ListAll(ctx context.Context) ([]*entity.PaymentRecord, error)
	// ListByStatus devuelve las filas cuyo estado coincide exactamente.
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.PaymentRecord, error)
	// GetByRow devuelve la fila por posición, o (nil, nil) si no existe.
	GetByRow(ctx context.Context, rowNum int) (*entity.PaymentRecord, error)
	// UpdateStatusIf mueve rowNum de from a to. (false, nil) si la fila ya no
	// estaba en from.
	UpdateStatusIf(ctx context.Context, rowNum int, from, to entity.Status) (bool, error)
}
