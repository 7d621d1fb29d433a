package infra

// pdf.go: one-page inventory summary using go-pdf/fpdf:
//   - header with generation time
//   - the four dashboard metrics
//   - top items by potential profit (name, revenue, profit)

import (
	"fmt"
	"io"
	"strings"
	"time"

	"bisnispintar/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// WriteSummaryPDF renders the dashboard summary as an A4 PDF into w.
func WriteSummaryPDF(w io.Writer, metrics dto.BusinessMetrics, chart []dto.ChartDatum, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "BisnisPintar", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Ringkasan Inventaris - "+generatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Metrics ──────────────────────────────────────────────────────────────
	rows := []struct {
		label string
		value string
	}{
		{"Total Modal Aset", FormatRupiah(metrics.TotalCapital)},
		{"Potensi Omzet", FormatRupiah(metrics.TotalPotentialRevenue)},
		{"Potensi Laba Bersih", FormatRupiah(metrics.TotalPotentialProfit)},
		{"Total Jenis Barang", fmt.Sprintf("%d Item", metrics.TotalItems)},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(contentW*0.5, 7, r.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 7, r.value, "B", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Top items ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("Top %d Barang dengan Potensi Laba Tertinggi", len(chart)), "", 1, "L", false, 0, "")

	col1 := contentW * 0.5
	col2 := contentW * 0.25
	col3 := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Barang", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Potensi Omzet", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "Potensi Laba", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(chart) == 0 {
		pdf.CellFormat(contentW, 7, "Belum ada data barang.", "", 1, "C", false, 0, "")
	}
	for _, d := range chart {
		name := []rune(d.Name)
		if len(name) > 40 {
			name = append(name[:39], '…')
		}
		pdf.CellFormat(col1, 6, tr(string(name)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, FormatRupiah(d.RevenueContribution), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, FormatRupiah(d.ProfitContribution), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}

// FormatRupiah renders whole rupiah with dot thousands separators, e.g. Rp50.000 or -Rp1.250.
func FormatRupiah(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}
