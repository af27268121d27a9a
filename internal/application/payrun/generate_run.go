package payrun

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	domainpayrun "github.com/jhoicas/Avisos-pago-api/internal/domain/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/repository"
	"github.com/jhoicas/Avisos-pago-api/pkg/logger"
)

// GenerateRunUseCase corrida de generación: por cada fila elegible del
// período renderiza un PDF de aviso de pago, lo guarda en la carpeta del
// período y avanza el estado a pending-approval.
//
// Máquina de estados por fila:
//
//	elegible → render → (ok: status=pending-approval)
//	                  | (fallo de render: status intacto, se loguea y continúa)
//	verificación fallida → (status=approval-warning, sin render)
//
// La corrida es idempotente respecto a la columna de estado: las filas ya
// etiquetadas quedan fuera del filtro y repetir la corrida no duplica PDFs.
type GenerateRunUseCase struct {
	records  repository.RecordRepository
	renderer NotificationRenderer
	store    DocumentStore
	clock    func() time.Time
	log      *logger.Logger
}

// NewGenerateRunUseCase construye el caso de uso. clock permite fijar el
// "mes en curso" en tests; nil usa time.Now.
func NewGenerateRunUseCase(
	records repository.RecordRepository,
	renderer NotificationRenderer,
	store DocumentStore,
	clock func() time.Time,
	log *logger.Logger,
) *GenerateRunUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &GenerateRunUseCase{
		records:  records,
		renderer: renderer,
		store:    store,
		clock:    clock,
		log:      log,
	}
}

// Execute corre la generación completa. periodOverride en formato YYMM
// reprocesa un período distinto al mes en curso; vacío = mes actual.
// Solo los errores de configuración/lectura abortan la corrida; todo fallo
// por fila se recupera localmente y queda contado en el resumen.
func (uc *GenerateRunUseCase) Execute(ctx context.Context, periodOverride string) (*dto.GenerationRunResponse, error) {
	runID := uuid.New().String()
	log := uc.log.With().Str("run_id", runID).Str("run", "generation").Logger()

	period := domainpayrun.PeriodOf(uc.clock())
	if periodOverride != "" {
		var err error
		if period, err = domainpayrun.ParsePeriod(periodOverride); err != nil {
			return nil, err
		}
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 1. Leer la tabla completa y aplicar el filtro de elegibilidad
	// ═══════════════════════════════════════════════════════════════════════════
	all, err := uc.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generación: listar filas: %w", err)
	}
	split := domainpayrun.SplitForGeneration(all, period)

	summary := &dto.GenerationRunResponse{
		RunID:         runID,
		Period:        period.YYMM(),
		Eligible:      len(split.Eligible),
		UnknownStatus: len(split.UnknownStatus),
	}
	for _, rec := range split.UnknownStatus {
		log.Warn().Int("row", rec.RowNum).Str("status", string(rec.Status)).
			Msg("estado fuera del conjunto cerrado; fila ignorada")
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 2. Marcar approval-warning ANTES de cualquier trabajo de render
	// ═══════════════════════════════════════════════════════════════════════════
	for _, rec := range split.Warnings {
		ok, err := uc.records.UpdateStatusIf(ctx, rec.RowNum, entity.StatusBlank, entity.StatusApprovalWarning)
		if err != nil {
			return nil, fmt.Errorf("generación: marcar warning fila %d: %w", rec.RowNum, err)
		}
		if !ok {
			summary.Skipped++
			continue
		}
		summary.Warnings++
		log.Warn().Int("row", rec.RowNum).Str("check", rec.CheckValue).
			Msg("verificación distinta de cero; fila marcada approval-warning")
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 3. Render + guardado + avance de estado, fila por fila
	// ═══════════════════════════════════════════════════════════════════════════
	folder := domainpayrun.FolderName(period)
	for _, rec := range split.Eligible {
		rowLog := log.With().Int("row", rec.RowNum).Str("agent", rec.AgentName).Logger()

		pdf, err := uc.renderer.RenderNotification(ctx, NotificationData{
			RowNum:       rec.RowNum,
			CompanyName:  rec.CompanyName,
			AgentName:    rec.AgentName,
			PaymentMonth: rec.PaymentMonth,
			Amount:       rec.Amount,
			BankAccount:  rec.BankAccount,
			PeriodYYMM:   period.YYMM(),
		})
		if err != nil {
			// Fallo no fatal: el estado queda en blanco y la próxima corrida reintenta.
			summary.RenderFailures++
			rowLog.Error().Err(err).Msg("render fallido; la fila queda en blanco")
			continue
		}

		name, err := uc.resolveFileName(ctx, folder, period, rec, rowLog)
		if err != nil {
			summary.RenderFailures++
			rowLog.Error().Err(err).Msg("no se pudo resolver el nombre del PDF")
			continue
		}
		if err := uc.store.Write(ctx, folder, name, pdf); err != nil {
			summary.RenderFailures++
			rowLog.Error().Err(err).Str("file", name).Msg("no se pudo guardar el PDF")
			continue
		}

		ok, err := uc.records.UpdateStatusIf(ctx, rec.RowNum, entity.StatusBlank, entity.StatusPendingApproval)
		if err != nil {
			return nil, fmt.Errorf("generación: avanzar estado fila %d: %w", rec.RowNum, err)
		}
		if !ok {
			summary.Skipped++
			rowLog.Warn().Msg("la fila cambió de estado durante la corrida; omitida")
			continue
		}
		summary.Generated++
		rowLog.Info().Str("file", name).Msg("aviso generado, pendiente de aprobación")
	}

	log.Info().
		Int("eligible", summary.Eligible).
		Int("generated", summary.Generated).
		Int("warnings", summary.Warnings).
		Int("render_failures", summary.RenderFailures).
		Int("skipped", summary.Skipped).
		Int("unknown_status", summary.UnknownStatus).
		Msg("corrida de generación terminada")
	return summary, nil
}

// resolveFileName aplica el esquema de dos ranuras: nombre base si está libre,
// nombre único si el base ya existe. Una tercera colisión (base y único
// ocupados) no tiene más ranuras: se loguea fuerte y se sobrescribe el único.
func (uc *GenerateRunUseCase) resolveFileName(
	ctx context.Context,
	folder string,
	period domainpayrun.Period,
	rec *entity.PaymentRecord,
	rowLog zerolog.Logger,
) (string, error) {
	base := domainpayrun.BaseFileName(period, rec.AgentName)
	exists, err := uc.store.Exists(ctx, folder, base)
	if err != nil {
		return "", fmt.Errorf("verificar %s: %w", base, err)
	}
	if !exists {
		return base, nil
	}
	unique := domainpayrun.UniqueFileName(period, rec.AgentName, rec.CompanyName, rec.RowNum)
	if taken, err := uc.store.Exists(ctx, folder, unique); err != nil {
		return "", fmt.Errorf("verificar %s: %w", unique, err)
	} else if taken {
		rowLog.Warn().Str("file", unique).
			Msg("tercera colisión de nombre en el período; se sobrescribe la ranura única")
	}
	return unique, nil
}
