package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDF renders the generated document as a simple A4 PDF and writes it to w.
// Markdown-style heading markers get a larger bold font; everything else is
// wrapped body text. This is intentionally minimal, not full layout.
func PDF(text string, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if strings.HasPrefix(s, "#") {
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			heading := strings.TrimSpace(s[i:])
			if heading == "" {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, s, "", "L", false)
		pdf.Ln(1)
	}
	return pdf.Output(w)
}
