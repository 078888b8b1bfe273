package report

import (
	"bytes"
	"fmt"
	"strings"
)

// buildReportPDF renders a minimal PDF with one page per department group.
// Each page is a title line followed by one numbered line per check-in.
func buildReportPDF(pages [][]string) ([]byte, error) {
	if len(pages) == 0 {
		pages = [][]string{{"Attendance Report"}}
	}

	// Object layout: 1 catalog, 2 pages, 3 font, then a page/content
	// object pair per group.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}

	for i, lines := range pages {
		var content strings.Builder
		content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
		for j, line := range lines {
			escaped := pdfEscape(line)
			if j == 0 {
				content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
				continue
			}
			content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
		}
		content.WriteString("ET")
		stream := content.String()

		objects = append(objects,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n", 4+2*i, 5+2*i),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", 5+2*i, len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
