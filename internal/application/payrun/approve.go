package payrun

import (
	"context"
	"fmt"

	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/repository"
	"github.com/jhoicas/Avisos-pago-api/pkg/logger"
)

// ApproveUseCase compuerta de aprobación humana: mueve una fila a
// approved-for-sending. En la hoja original el humano editaba la celda de
// estado directamente; aquí la transición pasa por la tabla de transiciones
// del dominio y por un update condicional.
type ApproveUseCase struct {
	records repository.RecordRepository
	log     *logger.Logger
}

// NewApproveUseCase construye el caso de uso.
func NewApproveUseCase(records repository.RecordRepository, log *logger.Logger) *ApproveUseCase {
	return &ApproveUseCase{records: records, log: log}
}

// Execute aprueba la fila rowNum para envío. operator es la identidad del
// token y queda en el log de auditoría.
//
// Retorna:
//   - domain.ErrNotFound       si la fila no existe.
//   - domain.ErrUnknownStatus  si el estado almacenado no es reconocido.
//   - domain.ErrConflict       si el estado actual no permite aprobar
//     (blank, sent) o si la fila cambió entre la lectura y la escritura.
func (uc *ApproveUseCase) Execute(ctx context.Context, rowNum int, operator string) (*dto.ApproveResponse, error) {
	rec, err := uc.records.GetByRow(ctx, rowNum)
	if err != nil {
		return nil, fmt.Errorf("aprobar: obtener fila %d: %w", rowNum, err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	current, err := entity.ParseStatus(string(rec.Status))
	if err != nil {
		return nil, err
	}
	if !current.CanTransition(entity.StatusApprovedForSending) {
		return nil, fmt.Errorf("%w: la fila %d está en %s", domain.ErrConflict, rowNum, current)
	}

	ok, err := uc.records.UpdateStatusIf(ctx, rowNum, current, entity.StatusApprovedForSending)
	if err != nil {
		return nil, fmt.Errorf("aprobar: actualizar fila %d: %w", rowNum, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: la fila %d cambió de estado", domain.ErrConflict, rowNum)
	}

	uc.log.Info().
		Int("row", rowNum).
		Str("from", string(current)).
		Str("operator", operator).
		Msg("fila aprobada para envío")

	return &dto.ApproveResponse{
		RowNum:     rowNum,
		FromStatus: string(current),
		Status:     string(entity.StatusApprovedForSending),
		ApprovedBy: operator,
	}, nil
}
