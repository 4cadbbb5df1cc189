package report

import (
	"bytes"
	"fmt"

	"github.com/signintech/gopdf"
)

// Common DejaVuSans locations; the font covers Latin and Arabic glyphs.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// RenderPDF produces a printable version of a clinical report.
func RenderPDF(rep ClinicalReport, displayName string) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load PDF font, is ttf-dejavu installed? last error: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Clinical Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated: %s", rep.GeneratedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Patient ID: %s", rep.PatientID))
	pdf.Br(15)
	if displayName != "" {
		pdf.Cell(nil, fmt.Sprintf("Patient: %s", displayName))
		pdf.Br(15)
	}
	pdf.Br(10)

	sections := []struct {
		title string
		body  string
	}{
		{"Summary", rep.Summary},
		{"Timeline", rep.Timeline},
		{"Risk Analysis", rep.RiskAnalysis},
		{"Recommendations", rep.Recommendations},
	}
	for _, s := range sections {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, s.title)
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		lines, _ := pdf.SplitText(s.body, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportFileName names the exported PDF after the report and the day it
// was generated.
func ReportFileName(rep ClinicalReport) string {
	return fmt.Sprintf("report_%s_%s.pdf", rep.PatientID, rep.GeneratedAt.Format("2006-01-02"))
}
