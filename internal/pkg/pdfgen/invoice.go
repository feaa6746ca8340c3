// Package pdfgen renders booking invoices as PDF documents.
package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/wondergroup-de/wonder-events-backend/internal/booking"
)

const dateLayout = "02.01.2006 15:04"

// RenderInvoice renders the frozen invoice snapshot of a booking into a PDF.
// It reads only the denormalized lines, so later catalog edits never change
// the document.
func RenderInvoice(b *booking.Booking) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "WONDER-EVENTS RECHNUNG", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Wonder-Group Malsch", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Rechnungsnummer: %s", b.Reference), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Kunde: %s", b.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Zeitraum: %s bis %s",
		b.StartTime.Format(dateLayout), b.EndTime.Format(dateLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "Positionen:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range b.Lines {
		text := fmt.Sprintf("%dx %s: %s EUR", line.Quantity, line.Description, line.Amount.StringFixed(2))
		pdf.MultiCell(0, 7, text, "", "L", false)
	}

	if b.Notes != "" {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("Hinweise: %s", b.Notes), "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("GESAMTBETRAG: %s EUR", b.Total.StringFixed(2)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
