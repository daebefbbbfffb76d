package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pdfbinder/internal/testsupport"
)

func TestOpenCountsPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "three.pdf")
	testsupport.WritePDF(t, path, 101, 102, 103)

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount())
}

func TestOpenCorruptNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	testsupport.WriteFile(t, path, "this is not a pdf")

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestMergePDFs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	testsupport.WritePDF(t, a, 101)
	testsupport.WritePDF(t, b, 201, 202)
	out := filepath.Join(dir, "out", "merged.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	require.NoError(t, MergePDFs([]string{b, a}, out))

	assert.Equal(t, []int{201, 202, 101}, testsupport.PageWidths(t, out))

	doc, err := Open(out)
	require.NoError(t, err)
	outline, err := doc.Outline()
	require.NoError(t, err)
	assert.Empty(t, outline, "merge must not leave per-file bookmarks")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(out), ".pdfbinder-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestMergePDFsSingleFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	testsupport.WritePDF(t, a, 101, 102)
	out := filepath.Join(dir, "merged.pdf")

	require.NoError(t, MergePDFs([]string{a}, out))
	assert.Equal(t, []int{101, 102}, testsupport.PageWidths(t, out))
}

func TestMergePDFsFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdf")
	bad := filepath.Join(dir, "bad.pdf")
	testsupport.WritePDF(t, good, 101)
	testsupport.WriteFile(t, bad, "garbage")
	out := filepath.Join(dir, "out", "merged.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	err := MergePDFs([]string{good, bad}, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.pdf")
	assert.NotContains(t, err.Error(), "good.pdf")
	assert.NoFileExists(t, out)

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOutlineRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WritePDF(t, path, 101, 102, 103, 104)

	doc, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, doc.AddOutlineItem("封面", 0))
	require.NoError(t, doc.AddOutlineItem("Table of Contents", 3))
	require.NoError(t, doc.AddOutlineItem("封面", 0))
	assert.Error(t, doc.AddOutlineItem("too far", 4))
	require.NoError(t, doc.Save(path))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 4, reopened.PageCount())
	outline, err := reopened.Outline()
	require.NoError(t, err)
	assert.Equal(t, []OutlineEntry{
		{Title: "封面", Page: 1},
		{Title: "Table of Contents", Page: 4},
		{Title: "封面", Page: 1},
	}, outline)
}

func TestAddOutlineItemAppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WritePDF(t, path, 101, 102)

	for _, title := range []string{"first", "second"} {
		doc, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, doc.AddOutlineItem(title, 1))
		require.NoError(t, doc.Save(path))
	}

	doc, err := Open(path)
	require.NoError(t, err)
	outline, err := doc.Outline()
	require.NoError(t, err)
	assert.Equal(t, []OutlineEntry{{"first", 2}, {"second", 2}}, outline)

	require.NoError(t, doc.RemoveBookmarks())
	outline, err = doc.Outline()
	require.NoError(t, err)
	assert.Empty(t, outline)
}

func TestTextEncoding(t *testing.T) {
	for _, s := range []string{"Body", "正文", "目录 – 1"} {
		enc, err := encodeText(s)
		require.NoError(t, err)
		got, err := decodeText(enc)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
