package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts. Alerting is best-effort:
// failures are logged and dropped, never retried — the next issue that keeps
// the product under its reorder level enqueues a fresh alert anyway.

import (
	"context"
	"encoding/json"
	"fmt"

	"stockledger/internal/infra"

	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	StockQty     int    `json:"stock_qty"`
	ReorderLevel int    `json:"reorder_level"`
}

// AlertWorker emails the configured recipient when a product crosses its
// reorder level.
type AlertWorker struct {
	mailer    *infra.Mailer
	recipient string
}

func NewAlertWorker(mailer *infra.Mailer, recipient string) *AlertWorker {
	return &AlertWorker{mailer: mailer, recipient: recipient}
}

func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if w.recipient == "" {
		log.Warn().Msg("alert_worker: no ALERT_RECIPIENT configured — skipping")
		return
	}

	subject := fmt.Sprintf("Low stock: %s (%d left)", payload.ProductName, payload.StockQty)
	body := fmt.Sprintf(
		"Product %q (id %d) is down to %d units, at or below its reorder level of %d.\n",
		payload.ProductName, payload.ProductID, payload.StockQty, payload.ReorderLevel,
	)

	if err := w.mailer.Send(w.recipient, subject, body, ""); err != nil {
		log.Error().Err(err).Int64("product_id", payload.ProductID).Msg("alert_worker: failed to send alert")
		return
	}
	log.Info().Int64("product_id", payload.ProductID).Int("stock_qty", payload.StockQty).Msg("alert_worker: low-stock alert sent")
}
