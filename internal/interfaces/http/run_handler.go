package http

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain"
)

// RunHandler dispara las corridas de generación y envío.
//
// Las corridas se ejecutan de forma síncrona dentro del request y el mutex
// rechaza disparos solapados con 409: el flujo está diseñado para una corrida
// a la vez (la tabla compartida no tiene locking; los updates condicionales
// por fila son la única defensa). El guard vive en el proceso, no en la DB.
type RunHandler struct {
	generate *apppayrun.GenerateRunUseCase
	dispatch *apppayrun.DispatchRunUseCase
	mu       sync.Mutex
}

// NewRunHandler construye el handler de corridas.
func NewRunHandler(generate *apppayrun.GenerateRunUseCase, dispatch *apppayrun.DispatchRunUseCase) *RunHandler {
	return &RunHandler{generate: generate, dispatch: dispatch}
}

// Generation godoc
// @Summary      Correr la fase de generación
// @Description  Genera un PDF por fila elegible del período y avanza el estado a pending-approval.
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunRequest  false  "period opcional en formato YYMM"
// @Success      200  {object}  dto.GenerationRunResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/runs/generation [post]
func (h *RunHandler) Generation(c *fiber.Ctx) error {
	if !h.mu.TryLock() {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RUN_IN_PROGRESS", Message: domain.ErrRunInProgress.Error()})
	}
	defer h.mu.Unlock()

	var in dto.RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}

	out, err := h.generate.Execute(c.Context(), in.Period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Dispatch godoc
// @Summary      Correr la fase de envío
// @Description  Envía por correo las filas aprobadas y avanza el estado a sent.
// @Tags         runs
// @Produce      json
// @Success      200  {object}  dto.DispatchRunResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/runs/dispatch [post]
func (h *RunHandler) Dispatch(c *fiber.Ctx) error {
	if !h.mu.TryLock() {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RUN_IN_PROGRESS", Message: domain.ErrRunInProgress.Error()})
	}
	defer h.mu.Unlock()

	out, err := h.dispatch.Execute(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
