package report

import (
	"context"
	"fmt"
)

// TelegramClient is the transport used to push reports to the clinician
// channel.
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

// Notifier delivers finished reports to the on-duty clinician as a PDF.
type Notifier struct {
	tg              TelegramClient
	clinicianChatID int64
}

func NewNotifier(tg TelegramClient, clinicianChatID int64) *Notifier {
	return &Notifier{tg: tg, clinicianChatID: clinicianChatID}
}

// Deliver renders the report and sends it to the clinician chat. Delivery
// is best-effort; the caller decides whether a failure matters.
func (n *Notifier) Deliver(ctx context.Context, rep ClinicalReport, displayName string) error {
	if n.clinicianChatID == 0 {
		return fmt.Errorf("clinician chat is not configured")
	}

	pdfData, err := RenderPDF(rep, displayName)
	if err != nil {
		// Degrade to a plain-text message when PDF rendering is unavailable.
		text := fmt.Sprintf("Clinical report for patient %s\n\nSummary:\n%s\n\nRisk analysis:\n%s",
			rep.PatientID, rep.Summary, rep.RiskAnalysis)
		return n.tg.SendMessage(n.clinicianChatID, text)
	}

	if err := n.tg.SendDocument(n.clinicianChatID, pdfData, ReportFileName(rep)); err != nil {
		return fmt.Errorf("failed to send report document: %w", err)
	}
	return nil
}
