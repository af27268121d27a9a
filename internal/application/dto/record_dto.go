package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordResponse una fila de la tabla de pagos en respuestas.
type RecordResponse struct {
	RowNum         int             `json:"row_num"`
	CompanyName    string          `json:"company_name"`
	AgentName      string          `json:"agent_name"`
	PaymentMonth   string          `json:"payment_month"`
	Amount         decimal.Decimal `json:"amount"`
	BankAccount    string          `json:"bank_account"`
	CheckValue     string          `json:"check_value,omitempty"`
	RecipientEmail string          `json:"recipient_email,omitempty"`
	Status         string          `json:"status"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ApproveResponse resultado de la aprobación humana de una fila.
type ApproveResponse struct {
	RowNum     int    `json:"row_num"`
	FromStatus string `json:"from_status"`
	Status     string `json:"status"`
	ApprovedBy string `json:"approved_by"`
}
