package worker

// remito_pdf_worker.go
// Pre-renders the remito PDF to disk right after the remito is created, so
// the download endpoint and the email job never render on the request path.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Juanarielok/prototipoR1-backend/internal/infra"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
)

// RemitoPDFJobPayload is the job envelope sent to QueueRemitoPDF.
type RemitoPDFJobPayload struct {
	RemitoID string `json:"remito_id"`
}

type RemitoPDFWorker struct {
	repo        repository.RemitoRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewRemitoPDFWorker(repo repository.RemitoRepository, dispatcher *Dispatcher, storagePath string) *RemitoPDFWorker {
	return &RemitoPDFWorker{repo: repo, dispatcher: dispatcher, storagePath: storagePath}
}

// Process renders the PDF to storage and chains an email job when the
// cliente has an email on file.
func (w *RemitoPDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload RemitoPDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("remito_pdf_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.RemitoID)
	if err != nil {
		log.Error().Str("remito_id", payload.RemitoID).Msg("remito_pdf_worker: invalid remito id")
		return
	}

	remito, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("remito_id", payload.RemitoID).Msg("remito_pdf_worker: remito not found")
		return
	}

	path, err := infra.GenerateRemitoPDF(remito, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("remito_id", payload.RemitoID).Msg("remito_pdf_worker: render failed")
		return
	}
	log.Info().Str("remito_id", payload.RemitoID).Str("path", path).Msg("remito_pdf_worker: PDF generated")

	if remito.Cliente == nil || remito.Cliente.Email == "" {
		return
	}
	err = w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: remito.Cliente.Email,
		Subject: "Remito de entrega",
		Body:    "Adjuntamos el remito correspondiente a su entrega.",
		PDFPath: path,
	})
	if err != nil {
		log.Error().Err(err).Str("remito_id", payload.RemitoID).Msg("remito_pdf_worker: enqueue email failed")
	}
}
