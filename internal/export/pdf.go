package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/studynotes/pkg/models"
	"github.com/go-pdf/fpdf"
)

const (
	pdfTitle    = "Study Notes — Revision Tracker"
	pdfMargin   = 20.0
	pdfRowH     = 18.0
	pdfLineH    = 10.0
	pdfCellPad  = 4.0
	pdfBodySize = 8.0
	// ZapfDingbats "4" is a heavy check mark.
	pdfCheck = "4"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Code", 100},
	{"Module", 238},
	{"Completion Date", 88},
	{models.Label24H.Title(), 94},
	{models.Label3Days.Title(), 94},
	{models.Label1Week.Title(), 94},
	{models.Label1Month.Title(), 94},
}

// headerFill is the header row background, #6A11CB.
var headerFill = [3]int{0x6A, 0x11, 0xCB}

type pdfReport struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// WritePDF renders notes as a landscape A4 table with a title, the
// generation time and a closing summary line.
func WritePDF(w io.Writer, notes []models.Note, generatedAt time.Time) error {
	pdf := renderPDF(notes, generatedAt, true)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf.Output(w)
}

func renderPDF(notes []models.Note, generatedAt time.Time, compress bool) *fpdf.Fpdf {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(pdfTitle, true)

	r := &pdfReport{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 26, r.tr(pdfTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Generated: "+generatedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(12)

	r.header()
	for _, n := range notes {
		r.row(n)
	}

	s := models.StatsOf(notes)
	r.breakIfNeeded(30)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 14, r.tr(pdfSummary(s)), "", 1, "L", false, 0, "")
	return pdf
}

func pdfSummary(s models.Stats) string {
	return fmt.Sprintf("Total notes: %d — Pending revisions: %d — Completed revisions: %d",
		s.Total, s.Pending, s.Completed)
}

// breakIfNeeded starts a new page, repeating the header row, when h
// more points do not fit.
func (r *pdfReport) breakIfNeeded(h float64) {
	_, pageH := r.pdf.GetPageSize()
	if r.pdf.GetY()+h <= pageH-pdfMargin {
		return
	}
	r.pdf.AddPage()
	r.header()
}

func (r *pdfReport) header() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", pdfBodySize+1)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.25)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, pdfRowH, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// row draws one note. Text cells wrap, so the row grows to fit the
// longest of them.
func (r *pdfReport) row(n models.Note) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "", pdfBodySize)

	cells := []string{n.NoteCode, n.SubjectName, n.CompletionDate.String()}
	lines := make([][]string, len(cells))
	h := pdfRowH
	for i, text := range cells {
		lines[i] = r.wrap(text, pdfColumns[i].width-pdfCellPad)
		if lh := float64(len(lines[i]))*pdfLineH + pdfCellPad*2; lh > h {
			h = lh
		}
	}

	r.breakIfNeeded(h)
	pdf.SetFont("Helvetica", "", pdfBodySize)
	pdf.SetTextColor(0, 0, 0)

	for i := range cells {
		r.textCell(pdfColumns[i].width, h, lines[i])
	}
	i := len(cells)
	n.Revisions.Each(func(_ models.Label, cp models.Checkpoint) {
		r.revisionCell(pdfColumns[i].width, h, cp)
		i++
	})
	pdf.Ln(h)
}

// textCell draws lines centred in a bordered cell of height h.
func (r *pdfReport) textCell(w, h float64, lines []string) {
	pdf := r.pdf
	x, y := pdf.GetXY()
	pdf.CellFormat(w, h, "", "1", 0, "C", false, 0, "")

	top := y + (h-float64(len(lines))*pdfLineH)/2
	for i, line := range lines {
		pdf.SetXY(x, top+float64(i)*pdfLineH)
		pdf.CellFormat(w, pdfLineH, r.tr(line), "", 0, "C", false, 0, "")
	}
	pdf.SetXY(x+w, y)
}

// revisionCell draws the checkpoint date, followed by a check mark when
// completed, centred in a bordered cell.
func (r *pdfReport) revisionCell(w, h float64, cp models.Checkpoint) {
	pdf := r.pdf
	x, y := pdf.GetXY()
	pdf.CellFormat(w, h, "", "1", 0, "C", false, 0, "")

	text := cp.Date.String()
	textW := pdf.GetStringWidth(text)
	markW := 0.0
	if cp.Completed {
		pdf.SetFont("ZapfDingbats", "", pdfBodySize)
		markW = pdf.GetStringWidth(pdfCheck) + 3
		pdf.SetFont("Helvetica", "", pdfBodySize)
	}

	pdf.SetXY(x+(w-textW-markW)/2, y)
	pdf.CellFormat(textW, h, text, "", 0, "C", false, 0, "")
	if cp.Completed {
		pdf.SetFont("ZapfDingbats", "", pdfBodySize)
		pdf.CellFormat(markW, h, pdfCheck, "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", pdfBodySize)
	}
	pdf.SetXY(x+w, y)
}

// wrap splits UTF-8 text into lines at most w points wide in the
// current font. Lines break at spaces, and inside a word only when the
// word alone is wider than w. Nothing is dropped.
func (r *pdfReport) wrap(s string, w float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		cand := word
		if line != "" {
			cand = line + " " + word
		}
		if r.width(cand) <= w {
			line = cand
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		for r.width(word) > w {
			runes := []rune(word)
			n := r.fitRunes(runes, w)
			lines = append(lines, string(runes[:n]))
			word = string(runes[n:])
		}
		line = word
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// fitRunes returns how many leading runes fit in w, at least one.
func (r *pdfReport) fitRunes(runes []rune, w float64) int {
	n := 1
	for n < len(runes) && r.width(string(runes[:n+1])) <= w {
		n++
	}
	return n
}

// width measures UTF-8 text as it will be drawn.
func (r *pdfReport) width(s string) float64 {
	return r.pdf.GetStringWidth(r.tr(s))
}
