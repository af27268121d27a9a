package dto

// RunRequest body opcional para disparar una corrida.
// Period permite reprocesar un período pasado en formato YYMM (ej. "2607");
// vacío = mes en curso.
type RunRequest struct {
	Period string `json:"period,omitempty"`
}

// GenerationRunResponse resumen de una corrida de generación.
type GenerationRunResponse struct {
	RunID          string `json:"run_id"`
	Period         string `json:"period"` // YYMM
	Eligible       int    `json:"eligible"`
	Generated      int    `json:"generated"`
	Warnings       int    `json:"warnings"`
	RenderFailures int    `json:"render_failures"`
	Skipped        int    `json:"skipped"` // update condicional perdido
	UnknownStatus  int    `json:"unknown_status"`
}

// DispatchRunResponse resumen de una corrida de envío.
type DispatchRunResponse struct {
	RunID        string `json:"run_id"`
	Approved     int    `json:"approved"`
	Sent         int    `json:"sent"`
	PDFNotFound  int    `json:"pdf_not_found"`
	InvalidDates int    `json:"invalid_dates"`
	SendFailures int    `json:"send_failures"`
	Skipped      int    `json:"skipped"`
}
