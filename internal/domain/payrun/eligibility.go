package payrun

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
)

// GenerationSplit resultado del filtro de elegibilidad de la fase de generación.
// Los tres buckets son disjuntos.
type GenerationSplit struct {
	// Eligible filas a las que se les genera PDF: estado en blanco, mes de
	// pago dentro del período y verificación en cero/vacío.
	Eligible []*entity.PaymentRecord
	// Warnings filas del período con estado en blanco pero verificación
	// distinta de cero: se marcan approval-warning ANTES de cualquier render.
	Warnings []*entity.PaymentRecord
	// UnknownStatus filas cuyo texto de estado no pertenece al conjunto
	// cerrado. Se reportan en el resumen; nunca se procesan.
	UnknownStatus []*entity.PaymentRecord
}

// SplitForGeneration aplica el filtro de elegibilidad sobre todas las filas.
//
// Una fila con cualquier estado reconocido distinto de blanco queda excluida
// por completo, incluido un approval-warning previo: la corrida es idempotente
// respecto a la columna de estado. El mes de pago que no parsea como fecha
// simplemente no coincide con el período (la fase de envío es la que etiqueta
// fechas inválidas, sobre filas ya aprobadas).
func SplitForGeneration(records []*entity.PaymentRecord, period Period) GenerationSplit {
	var split GenerationSplit
	for _, rec := range records {
		status, err := entity.ParseStatus(string(rec.Status))
		if err != nil {
			split.UnknownStatus = append(split.UnknownStatus, rec)
			continue
		}
		if !status.IsBlank() {
			continue
		}
		month, err := ParsePaymentMonth(rec.PaymentMonth)
		if err != nil || !period.Contains(month) {
			continue
		}
		if CheckPasses(rec.CheckValue) {
			split.Eligible = append(split.Eligible, rec)
		} else {
			split.Warnings = append(split.Warnings, rec)
		}
	}
	return split
}

// CheckPasses evalúa la celda de verificación de una fila.
// Pasa si está vacía o si, tras quitar el signo de moneda y separadores de
// miles, el valor numérico es exactamente cero ("0", "0.00", "¥0", "￥0").
// Cualquier otro contenido, numérico o no, falla la verificación.
func CheckPasses(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "￥") // variante de ancho completo
	s = strings.ReplaceAll(s, ",", "")
	n, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return n.IsZero()
}
