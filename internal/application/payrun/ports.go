package payrun

import (
	"context"

	"github.com/shopspring/decimal"
)

// NotificationData datos de una fila que se vuelcan al documento.
type NotificationData struct {
	RowNum       int
	CompanyName  string
	AgentName    string
	PaymentMonth string // texto crudo de la celda, tal como figura en la tabla
	Amount       decimal.Decimal
	BankAccount  string
	PeriodYYMM   string
}

// NotificationRenderer puerto de render de documentos: dado el contenido de un
// aviso produce los bytes del PDF. Hay dos adaptadores: Maroto (local) y el
// servicio de export de hojas (remoto, vía REST). Un fallo de render es
// recuperable por fila: la corrida continúa con la siguiente.
type NotificationRenderer interface {
	RenderNotification(ctx context.Context, data NotificationData) ([]byte, error)
}

// DocumentStore puerto de almacenamiento de PDFs por carpeta de período.
type DocumentStore interface {
	Write(ctx context.Context, folder, name string, data []byte) error
	Exists(ctx context.Context, folder, name string) (bool, error)
	Read(ctx context.Context, folder, name string) ([]byte, error)
}

// OutboundMessage correo con el aviso adjunto.
type OutboundMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// NotificationMailer puerto de transporte de correo. El adaptador aplica el
// alias de remitente y el CC fijo de configuración.
type NotificationMailer interface {
	Send(ctx context.Context, msg OutboundMessage) error
}
