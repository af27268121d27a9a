package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/repository"
)

// RecordHandler listado de filas y compuerta de aprobación.
type RecordHandler struct {
	records repository.RecordRepository
	approve *apppayrun.ApproveUseCase
}

// NewRecordHandler construye el handler de filas.
func NewRecordHandler(records repository.RecordRepository, approve *apppayrun.ApproveUseCase) *RecordHandler {
	return &RecordHandler{records: records, approve: approve}
}

// List godoc
// @Summary      Listar filas de la tabla de pagos
// @Tags         records
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado exacto (ej. pending-approval)"
// @Success      200  {array}   dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/records [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	var (
		recs []*entity.PaymentRecord
		err  error
	)
	if raw := c.Query("status"); c.Context().QueryArgs().Has("status") {
		status, perr := entity.ParseStatus(raw)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_STATUS", Message: "estado no reconocido: " + raw})
		}
		recs, err = h.records.ListByStatus(c.Context(), status)
	} else {
		recs, err = h.records.ListAll(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.RecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResponse(rec))
	}
	return c.JSON(out)
}

// GetByRow godoc
// @Summary      Obtener una fila por posición
// @Tags         records
// @Produce      json
// @Param        row  path  int  true  "posición de la fila"
// @Success      200  {object}  dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/records/{row} [get]
func (h *RecordHandler) GetByRow(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "row debe ser numérico"})
	}
	rec, err := h.records.GetByRow(c.Context(), row)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la fila no existe"})
	}
	return c.JSON(toRecordResponse(rec))
}

// Approve godoc
// @Summary      Aprobar una fila para envío
// @Description  Compuerta humana del flujo: mueve la fila a approved-for-sending.
// @Tags         records
// @Produce      json
// @Param        row  path  int  true  "posición de la fila"
// @Success      200  {object}  dto.ApproveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/records/{row}/approve [post]
func (h *RecordHandler) Approve(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "row debe ser numérico"})
	}
	out, err := h.approve.Execute(c.Context(), row, GetOperator(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la fila no existe"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		case errors.Is(err, domain.ErrUnknownStatus):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNKNOWN_STATUS", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

func toRecordResponse(rec *entity.PaymentRecord) dto.RecordResponse {
	return dto.RecordResponse{
		RowNum:         rec.RowNum,
		CompanyName:    rec.CompanyName,
		AgentName:      rec.AgentName,
		PaymentMonth:   rec.PaymentMonth,
		Amount:         rec.Amount,
		BankAccount:    rec.BankAccount,
		CheckValue:     rec.CheckValue,
		RecipientEmail: rec.RecipientEmail,
		Status:         string(rec.Status),
		UpdatedAt:      rec.UpdatedAt,
	}
}
