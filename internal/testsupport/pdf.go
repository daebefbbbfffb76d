// Package testsupport builds small PDF fixtures for tests.
//
// Each generated page has a distinct MediaBox width so that tests can tell
// pages apart after merging: PageWidths reads them back in page order.
package testsupport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFBytes returns a minimal valid PDF with one page per width.
func PDFBytes(widths ...int) []byte {
	if len(widths) == 0 {
		widths = []int{595}
	}

	objs := make([]string, 0, len(widths)+2)
	kids := make([]string, len(widths))
	for i := range widths {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(widths)))
	for _, w := range widths {
		objs = append(objs, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d 842] /Resources << >> >>", w))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// WritePDF writes a PDF fixture to path, creating parent directories.
func WritePDF(t testing.TB, path string, widths ...int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, PDFBytes(widths...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteFile writes arbitrary content, e.g. a corrupt "PDF".
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// PageWidths returns the MediaBox width of every page of the PDF at path.
func PageWidths(t testing.TB, path string) []int {
	t.Helper()
	ctx, err := pdfapi.ReadContextFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		t.Fatalf("page count %s: %v", path, err)
	}

	widths := make([]int, 0, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		d, _, _, err := ctx.PageDict(i, false)
		if err != nil {
			t.Fatalf("page %d of %s: %v", i, path, err)
		}
		box, err := ctx.DereferenceArray(d["MediaBox"])
		if err != nil || len(box) != 4 {
			t.Fatalf("page %d of %s: bad MediaBox %v", i, path, d["MediaBox"])
		}
		switch w := box[2].(type) {
		case types.Integer:
			widths = append(widths, int(w))
		case types.Float:
			widths = append(widths, int(w))
		default:
			t.Fatalf("page %d of %s: unexpected MediaBox width %T", i, path, w)
		}
	}
	return widths
}
