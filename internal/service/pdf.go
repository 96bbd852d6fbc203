package service

import (
	"bytes"
	"fmt"

	"mindclass_backend/internal/model"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

const (
	pdfMargin       = 20
	pdfTopMargin    = 20
	pdfHeaderWidth  = 50
	pdfHeaderHeight = 8
	pdfLineHeight   = 7
)

// RenderTestPDF lays out a test as an A4 paper with a name header,
// numbered questions and lettered options.
func RenderTestPDF(test *model.Test, withAnswers bool) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfTopMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	for _, label := range []string{"Name:", "Class:", "Date:"} {
		pdf.Cell(pdfHeaderWidth, pdfHeaderHeight, label)
		pdf.Cell(0, pdfHeaderHeight, "_________________________________")
		pdf.Ln(pdfHeaderHeight)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(test.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s  |  %d minutes  |  %d questions",
		test.Subject, test.Settings.TimeLimitMinutes, len(test.Questions))), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for i, q := range test.Questions {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, pdfLineHeight, tr(fmt.Sprintf("%d. %s", i+1, q.Text)), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		switch q.Type {
		case model.QuestionMCQ:
			for j, opt := range q.Options {
				pdf.CellFormat(8, pdfLineHeight, "", "", 0, "L", false, 0, "")
				pdf.MultiCell(0, pdfLineHeight, tr(fmt.Sprintf("(%c) %s", 'a'+j, opt)), "", "L", false)
			}
		case model.QuestionLong:
			for k := 0; k < 6; k++ {
				pdf.Cell(0, pdfLineHeight, "______________________________________________________________________")
				pdf.Ln(pdfLineHeight)
			}
		default:
			pdf.Cell(0, pdfLineHeight, "______________________________________________________________________")
			pdf.Ln(pdfLineHeight)
		}
		if withAnswers && q.CorrectAnswer != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, pdfLineHeight, tr("Answer: "+q.CorrectAnswer), "", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render test pdf")
	}
	return &buf, nil
}
