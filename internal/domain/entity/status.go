package entity

import (
	"fmt"

	"github.com/jhoicas/Avisos-pago-api/internal/domain"
)

// Status estado de un registro de pago dentro del flujo de dos fases.
//
// La columna de estado es el punto de coordinación entre la corrida de
// generación y la de envío: la generación solo toca filas en blanco, el envío
// solo toca filas aprobadas, y un humano mueve las filas entre ambas fases.
// El tipo es cerrado: cualquier texto fuera del conjunto se rechaza en
// ParseStatus en lugar de tratarse silenciosamente como "no coincide".
type Status string

const (
	// StatusBlank fila nunca procesada; candidata a generación.
	StatusBlank Status = ""
	// StatusPendingApproval PDF generado, a la espera de revisión humana.
	StatusPendingApproval Status = "pending-approval"
	// StatusApprovalWarning el valor de verificación no era cero/vacío; requiere revisión manual.
	StatusApprovalWarning Status = "approval-warning"
	// StatusApprovedForSending un humano aprobó el aviso; lista para envío.
	StatusApprovedForSending Status = "approved-for-sending"
	// StatusSent aviso enviado por correo. Terminal.
	StatusSent Status = "sent"
	// StatusErrorPDFNotFound el envío no encontró el PDF generado.
	StatusErrorPDFNotFound Status = "error-pdf-not-found"
	// StatusErrorInvalidDate el mes de pago no era una fecha válida al momento del envío.
	StatusErrorInvalidDate Status = "error-invalid-date"
)

// ParseStatus convierte el texto crudo de la columna de estado en un Status.
// Un valor no reconocido devuelve domain.ErrUnknownStatus: las corridas lo
// reportan en el resumen en lugar de ignorar la fila en silencio.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusBlank, StatusPendingApproval, StatusApprovalWarning,
		StatusApprovedForSending, StatusSent,
		StatusErrorPDFNotFound, StatusErrorInvalidDate:
		return Status(raw), nil
	}
	return StatusBlank, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, raw)
}

// transitions tabla exhaustiva de transiciones permitidas.
// Generación: blank → pending-approval | approval-warning.
// Humano: pending/warning/errores → approved-for-sending.
// Envío: approved-for-sending → sent | error-pdf-not-found | error-invalid-date.
var transitions = map[Status][]Status{
	StatusBlank:              {StatusPendingApproval, StatusApprovalWarning},
	StatusPendingApproval:    {StatusApprovedForSending},
	StatusApprovalWarning:    {StatusApprovedForSending},
	StatusApprovedForSending: {StatusSent, StatusErrorPDFNotFound, StatusErrorInvalidDate},
	StatusErrorPDFNotFound:   {StatusApprovedForSending},
	StatusErrorInvalidDate:   {StatusApprovedForSending},
	StatusSent:               {}, // terminal
}

// CanTransition indica si el paso from → to está permitido por el flujo.
func (s Status) CanTransition(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// IsBlank indica si la fila nunca ha sido procesada.
func (s Status) IsBlank() bool { return s == StatusBlank }

// String implementa fmt.Stringer; el blanco se muestra como "(blank)" en logs.
func (s Status) String() string {
	if s == StatusBlank {
		return "(blank)"
	}
	return string(s)
}
