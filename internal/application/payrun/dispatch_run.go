package payrun

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	domainpayrun "github.com/jhoicas/Avisos-pago-api/internal/domain/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/repository"
	"github.com/jhoicas/Avisos-pago-api/pkg/logger"
)

// DispatchRunUseCase corrida de envío: toma las filas que un humano aprobó,
// relocaliza el PDF generado por la nomenclatura determinista y lo envía por
// correo con adjunto.
//
// Máquina de estados por fila (estado inicial approved-for-sending):
//
//	aprobada → re-validar fecha → (inválida: status=error-invalid-date, sin búsqueda)
//	         → buscar PDF (único, luego base) → (no está: status=error-pdf-not-found, sin correo)
//	         → enviar correo → (ok: status=sent) | (fallo: status intacto, reintenta la próxima corrida)
//
// Tras cada envío exitoso se aplica una pausa fija de cortesía; es un retardo
// constante entre operaciones, no backoff adaptativo.
type DispatchRunUseCase struct {
	records   repository.RecordRepository
	store     DocumentStore
	mailer    NotificationMailer
	sendDelay time.Duration
	log       *logger.Logger
}

// NewDispatchRunUseCase construye el caso de uso.
func NewDispatchRunUseCase(
	records repository.RecordRepository,
	store DocumentStore,
	mailer NotificationMailer,
	sendDelay time.Duration,
	log *logger.Logger,
) *DispatchRunUseCase {
	return &DispatchRunUseCase{
		records:   records,
		store:     store,
		mailer:    mailer,
		sendDelay: sendDelay,
		log:       log,
	}
}

// Execute corre el envío completo. Solo actúa sobre filas cuyo estado es
// exactamente approved-for-sending; cualquier otro estado (incluido sent)
// queda intacto en corridas repetidas.
func (uc *DispatchRunUseCase) Execute(ctx context.Context) (*dto.DispatchRunResponse, error) {
	runID := uuid.New().String()
	log := uc.log.With().Str("run_id", runID).Str("run", "dispatch").Logger()

	approved, err := uc.records.ListByStatus(ctx, entity.StatusApprovedForSending)
	if err != nil {
		return nil, fmt.Errorf("envío: listar filas aprobadas: %w", err)
	}

	summary := &dto.DispatchRunResponse{RunID: runID, Approved: len(approved)}

	// markError etiqueta la fila con un estado de error y continúa la corrida.
	markError := func(rec *entity.PaymentRecord, to entity.Status, reason string) error {
		ok, err := uc.records.UpdateStatusIf(ctx, rec.RowNum, entity.StatusApprovedForSending, to)
		if err != nil {
			return fmt.Errorf("envío: marcar %s fila %d: %w", to, rec.RowNum, err)
		}
		if !ok {
			summary.Skipped++
			return nil
		}
		log.Warn().Int("row", rec.RowNum).Str("status", string(to)).Msg(reason)
		return nil
	}

	for _, rec := range approved {
		rowLog := log.With().Int("row", rec.RowNum).Str("company", rec.CompanyName).Logger()

		// ═══════════════════════════════════════════════════════════════════════
		// 1. Doble verificación de fecha: la celda pudo editarse a mano
		//    entre la generación y la aprobación.
		// ═══════════════════════════════════════════════════════════════════════
		month, err := domainpayrun.ParsePaymentMonth(rec.PaymentMonth)
		if err != nil {
			summary.InvalidDates++
			if err := markError(rec, entity.StatusErrorInvalidDate,
				"mes de pago ilegible al momento del envío"); err != nil {
				return nil, err
			}
			continue
		}
		period := domainpayrun.PeriodOf(month)

		// ═══════════════════════════════════════════════════════════════════════
		// 2. Relocalizar el PDF: nombre único primero, base después
		// ═══════════════════════════════════════════════════════════════════════
		folder := domainpayrun.FolderName(period)
		pdf, name, err := uc.locatePDF(ctx, folder, period, rec)
		if err != nil {
			return nil, err
		}
		if pdf == nil {
			summary.PDFNotFound++
			if err := markError(rec, entity.StatusErrorPDFNotFound,
				"no se encontró el PDF generado"); err != nil {
				return nil, err
			}
			continue
		}

		// ═══════════════════════════════════════════════════════════════════════
		// 3. Enviar y avanzar a sent
		// ═══════════════════════════════════════════════════════════════════════
		msg := OutboundMessage{
			To:             rec.RecipientEmail,
			Subject:        fmt.Sprintf("Aviso de pago %s — %s", period.YYMM(), rec.CompanyName),
			Body:           mailBody(rec, period),
			AttachmentName: name,
			Attachment:     pdf,
		}
		if err := uc.mailer.Send(ctx, msg); err != nil {
			// La fila queda aprobada: la próxima corrida la reintenta.
			summary.SendFailures++
			rowLog.Error().Err(err).Msg("fallo de envío; la fila sigue aprobada")
			continue
		}

		ok, err := uc.records.UpdateStatusIf(ctx, rec.RowNum, entity.StatusApprovedForSending, entity.StatusSent)
		if err != nil {
			return nil, fmt.Errorf("envío: avanzar estado fila %d: %w", rec.RowNum, err)
		}
		if !ok {
			summary.Skipped++
			rowLog.Warn().Msg("la fila cambió de estado durante la corrida; correo ya enviado")
			continue
		}
		summary.Sent++
		rowLog.Info().Str("file", name).Msg("aviso enviado")

		// Pausa de cortesía entre envíos sucesivos.
		if uc.sendDelay > 0 {
			select {
			case <-time.After(uc.sendDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	log.Info().
		Int("approved", summary.Approved).
		Int("sent", summary.Sent).
		Int("pdf_not_found", summary.PDFNotFound).
		Int("invalid_dates", summary.InvalidDates).
		Int("send_failures", summary.SendFailures).
		Int("skipped", summary.Skipped).
		Msg("corrida de envío terminada")
	return summary, nil
}

// locatePDF sondea los candidatos en orden de prioridad y devuelve los bytes
// y el nombre encontrado, o (nil, "", nil) si ningún candidato existe.
func (uc *DispatchRunUseCase) locatePDF(
	ctx context.Context,
	folder string,
	period domainpayrun.Period,
	rec *entity.PaymentRecord,
) ([]byte, string, error) {
	for _, name := range domainpayrun.CandidateFileNames(period, rec.AgentName, rec.CompanyName, rec.RowNum) {
		exists, err := uc.store.Exists(ctx, folder, name)
		if err != nil {
			return nil, "", fmt.Errorf("envío: verificar %s/%s: %w", folder, name, err)
		}
		if !exists {
			continue
		}
		data, err := uc.store.Read(ctx, folder, name)
		if err != nil {
			return nil, "", fmt.Errorf("envío: leer %s/%s: %w", folder, name, err)
		}
		return data, name, nil
	}
	return nil, "", nil
}

func mailBody(rec *entity.PaymentRecord, period domainpayrun.Period) string {
	return fmt.Sprintf(
		"Estimado proveedor %s:\n\n"+
			"Adjuntamos el aviso de pago correspondiente al período %s.\n"+
			"Agente responsable: %s.\n\n"+
			"Este mensaje fue generado automáticamente; por favor no responda a esta dirección.\n",
		rec.CompanyName, period.String(), rec.AgentName)
}
