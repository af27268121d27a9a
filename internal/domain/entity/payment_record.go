package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord una fila de la tabla compartida de pagos a proveedores.
//
// La fila se identifica por su posición (RowNum), heredada de la hoja de
// cálculo de finanzas de la que se importa. PaymentMonth y CheckValue se
// guardan como texto crudo: la hoja es una grilla sin tipos y el flujo de
// envío re-valida la fecha en su propia fase (ver payrun.ParsePaymentMonth).
type PaymentRecord struct {
	RowNum         int             // posición de la fila; clave primaria
	CompanyName    string          // razón social del proveedor destinatario
	AgentName      string          // agente/responsable que figura en el aviso
	PaymentMonth   string          // mes de pago, texto crudo de la celda (ej. "2026/08/01")
	Amount         decimal.Decimal // monto del pago
	BankAccount    string          // texto libre con la cuenta bancaria de abono
	CheckValue     string          // celda de verificación; debe ser cero/vacía para generar
	RecipientEmail string          // correo del destinatario del aviso
	Status         Status
	UpdatedAt      time.Time
}
