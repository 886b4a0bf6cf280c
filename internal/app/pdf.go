package app

import (
    "bufio"
    "regexp"
    "strings"

    "github.com/jung-kurt/gofpdf"
)

var (
    linkRe     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
    emphasisRe = regexp.MustCompile("\\*\\*([^*]+)\\*\\*|`([^`]+)`")
)

// writeReportPDF renders the Markdown report as a plain PDF: headings in bold,
// list items and quotes indented, table rows as cells. It does not perform
// full Markdown layout.
func writeReportPDF(markdown string, outPath string) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.SetTitle("Educational content analysis", true)
    pdf.SetFont("Helvetica", "", 11)
    pdf.AddPage()

    scanner := bufio.NewScanner(strings.NewReader(markdown))
    scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
    for scanner.Scan() {
        s := strings.TrimSpace(scanner.Text())
        switch {
        case s == "":
            pdf.Ln(4)
        case s == "---":
            y := pdf.GetY() + 2
            pdf.Line(10, y, 200, y)
            pdf.Ln(4)
        case strings.HasPrefix(s, "#"):
            i := countPrefix(s, '#')
            text := strings.TrimSpace(s[i:])
            if text == "" { continue }
            size := 16.0
            if i == 2 { size = 13.0 }
            if i >= 3 { size = 11.5 }
            pdf.SetFont("Helvetica", "B", size)
            pdf.MultiCell(0, 8, tr(text), "", "L", false)
            pdf.SetFont("Helvetica", "", 11)
        case strings.HasPrefix(s, "|"):
            if strings.Trim(s, "|-: ") == "" { continue }
            cells := strings.Split(strings.Trim(s, "|"), "|")
            w := 190.0 / float64(len(cells))
            for _, c := range cells {
                pdf.CellFormat(w, 6, tr(plainInline(strings.TrimSpace(c))), "1", 0, "L", false, 0, "")
            }
            pdf.Ln(-1)
        case strings.HasPrefix(s, "> "):
            pdf.SetFont("Helvetica", "I", 10)
            pdf.SetX(16)
            pdf.MultiCell(0, 5, tr(s[2:]), "", "L", false)
            pdf.SetFont("Helvetica", "", 11)
        case strings.HasPrefix(s, "- "):
            pdf.SetX(14)
            writeInline(pdf, tr, "- "+s[2:])
            pdf.Ln(6)
        default:
            writeInline(pdf, tr, s)
            pdf.Ln(6)
        }
    }
    if err := scanner.Err(); err != nil {
        return err
    }
    return pdf.OutputFileAndClose(outPath)
}

// writeInline writes one line, turning Markdown links into clickable PDF
// links. Intra-document anchors are written as plain text.
func writeInline(pdf *gofpdf.Fpdf, tr func(string) string, s string) {
    parts := linkRe.FindAllStringSubmatchIndex(s, -1)
    pos := 0
    for _, m := range parts {
        if m[0] > pos {
            pdf.Write(5, tr(plainInline(s[pos:m[0]])))
        }
        text := tr(s[m[2]:m[3]])
        url := s[m[4]:m[5]]
        if strings.HasPrefix(url, "#") {
            pdf.Write(5, text)
        } else {
            pdf.WriteLinkString(5, text, url)
        }
        pos = m[1]
    }
    if pos < len(s) {
        pdf.Write(5, tr(plainInline(s[pos:])))
    }
}

// plainInline drops **bold** and `code` markers.
func plainInline(s string) string {
    return emphasisRe.ReplaceAllString(s, "$1$2")
}
