// Package pdf implementa el render local del aviso de pago con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: AVISO DE PAGO  │  Período + Fila                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATARIO: Razón social del proveedor                   │
//	│  AGENTE: Responsable del pago                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Mes de pago | Monto | Cuenta de abono               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Leyenda de generación automática                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
)

// Verificar en tiempo de compilación que el renderer implementa el puerto.
var _ apppayrun.NotificationRenderer = (*MarotoNotificationRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoNotificationRenderer implementa payrun.NotificationRenderer usando Maroto v2.
type MarotoNotificationRenderer struct{}

// NewMarotoNotificationRenderer construye el renderer.
func NewMarotoNotificationRenderer() *MarotoNotificationRenderer {
	return &MarotoNotificationRenderer{}
}

// RenderNotification genera el PDF del aviso y devuelve sus bytes.
func (r *MarotoNotificationRenderer) RenderNotification(
	_ context.Context,
	data apppayrun.NotificationData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Aviso de Pago", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + posición de fila (der).
func headerRow(data apppayrun.NotificationData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("AVISO DE PAGO / PAYMENT NOTIFICATION", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+data.PeriodYYMM, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Referencia: fila %d", data.RowNum), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// recipientRow: proveedor destinatario y agente responsable.
func recipientRow(data apppayrun.NotificationData) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
			text.New("Agente responsable: "+data.AgentName, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Mes de pago", 3, align.Left),
		h("Monto", 3, align.Right),
		h("Cuenta de abono", 6, align.Left),
	)
}

func detailRow(data apppayrun.NotificationData) core.Row {
	return row.New(9).Add(
		col.New(3).Add(text.New(data.PaymentMonth, props.Text{
			Size: 9, Align: align.Left, Top: 2,
		})),
		col.New(3).Add(text.New("¥"+data.Amount.StringFixed(0), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
		col.New(6).Add(text.New(data.BankAccount, props.Text{
			Size: 8, Align: align.Left, Top: 2,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Documento generado automáticamente por el flujo de avisos de pago. No requiere firma.",
				props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 2}),
		),
	)
}
