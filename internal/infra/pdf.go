package infra

// pdf.go — remito PDF generation using go-pdf/fpdf.
// Renders an A4 delivery receipt with:
//   - REMITO header with short id and date
//   - CLIENTE block (nombre, CUIT, dirección, teléfono)
//   - CHOFER block
//   - Product table (producto, cantidad, precio unitario, subtotal)
//   - Subtotal / IVA (21%) / Total
//   - Optional notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

// maxNombreProducto caps product names (in runes) in the table column.
const maxNombreProducto = 40

// RemitoPDFBytes renders the remito document in memory. Cliente and Chofer
// must be preloaded on the model.
func RemitoPDFBytes(r *model.Remito) ([]byte, error) {
	pdf := buildRemitoPDF(r)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateRemitoPDF renders the remito to storagePath/remito_{id}.pdf
// (created if needed) and returns the absolute path to the file.
func GenerateRemitoPDF(r *model.Remito, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("remito_%s.pdf", r.ID))
	pdf := buildRemitoPDF(r)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func buildRemitoPDF(r *model.Remito) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Helvetica is a CP1252 core font; every string that can carry
	// accents ("Dirección", names, notes) goes through the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "REMITO", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	shortID := strings.SplitN(r.ID.String(), "-", 2)[0]
	pdf.CellFormat(contentW/2, 6, tr(fmt.Sprintf("N° %s", strings.ToUpper(shortID))), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, r.Fecha.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Cliente ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "CLIENTE", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if r.Cliente != nil {
		pdf.CellFormat(contentW, 5, tr(r.Cliente.Nombre), "", 1, "L", false, 0, "")
		if r.Cliente.CUIT != "" {
			pdf.CellFormat(contentW, 5, "CUIT: "+r.Cliente.CUIT, "", 1, "L", false, 0, "")
		}
		if r.Cliente.Ubicacion != "" {
			pdf.CellFormat(contentW, 5, tr("Dirección: "+r.Cliente.Ubicacion), "", 1, "L", false, 0, "")
		}
		if r.Cliente.Telefono != "" {
			pdf.CellFormat(contentW, 5, tr("Teléfono: "+r.Cliente.Telefono), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)

	// ── Chofer ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "CHOFER", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if r.Chofer != nil {
		pdf.CellFormat(contentW, 5, tr(r.Chofer.Nombre), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// ── Product table ────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // producto
	col2 := contentW * 0.14 // cantidad
	col3 := contentW * 0.20 // precio unitario
	col4 := contentW * 0.20 // subtotal

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range r.Productos {
		pdf.CellFormat(col1, 6, tr(recortarNombre(p.Nombre)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", p.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+p.Precio.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+p.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2+col3, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+r.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 6, "IVA (21%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+r.IVA.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+r.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Notas ─────────────────────────────────────────────────────────────────
	if r.Notas != nil && *r.Notas != "" {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr("Notas: "+*r.Notas), "", "L", false)
	}

	return pdf
}

// recortarNombre limits a product name to maxNombreProducto runes so the row
// fits its column. Counting runes, not bytes, keeps accented names intact.
func recortarNombre(s string) string {
	runes := []rune(s)
	if len(runes) <= maxNombreProducto {
		return s
	}
	return string(runes[:maxNombreProducto-1]) + "…"
}
