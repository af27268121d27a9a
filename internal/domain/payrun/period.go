// Package payrun contiene las reglas puras del flujo de avisos de pago:
// período de procesamiento, filtro de elegibilidad y nomenclatura de archivos.
// No depende de infraestructura; los casos de uso en application/payrun lo
// orquestan contra los puertos de render, almacenamiento y correo.
package payrun

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Avisos-pago-api/internal/domain"
)

// Period un bucket año-mes: filtra las filas elegibles y nombra la carpeta
// y los archivos del período.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf devuelve el período al que pertenece un instante.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod interpreta un override manual de período en formato YYMM
// (ej. "2608" = agosto 2026). Siglo fijo 20xx.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("0601", s)
	if err != nil || len(s) != 4 {
		return Period{}, fmt.Errorf("%w: se esperaba YYMM, recibido %q", domain.ErrInvalidPeriod, s)
	}
	return PeriodOf(t), nil
}

// YYMM formatea el período como prefijo de dos dígitos de año + mes ("2608").
func (p Period) YYMM() string {
	return fmt.Sprintf("%02d%02d", p.Year%100, int(p.Month))
}

// Contains indica si un instante cae dentro del período (mismo año y mes).
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// paymentMonthLayouts formatos aceptados para la celda de mes de pago.
// La hoja de finanzas original escribe fechas con y sin ceros a la izquierda,
// con "/" o "-"; el layout "2006/1/2" de Go acepta ambas variantes de relleno.
var paymentMonthLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"2006/1",
	"2006-1",
	"2006年1月2日", // formato japonés de la hoja de origen
	"2006年1月",
}

// ParsePaymentMonth interpreta el texto crudo de la celda de mes de pago.
// El flujo de envío la re-valida aunque la generación ya lo hizo: entre las
// dos fases la celda puede haber sido editada a mano.
func ParsePaymentMonth(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: mes de pago vacío", domain.ErrInvalidInput)
	}
	for _, layout := range paymentMonthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: mes de pago %q no es una fecha", domain.ErrInvalidInput, raw)
}
