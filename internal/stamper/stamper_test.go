package stamper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/pdf"
	"go-pdfbinder/internal/testsupport"
)

func readOutline(t *testing.T, path string) []pdf.OutlineEntry {
	t.Helper()
	doc, err := pdf.Open(path)
	require.NoError(t, err)
	outline, err := doc.Outline()
	require.NoError(t, err)
	return outline
}

func TestStampDropsOutOfRangeEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A_合并后的pdf.pdf")
	testsupport.WritePDF(t, path, 101, 201, 202, 301)
	sink := logsink.New(nil, 0)

	added, err := New(sink).Stamp(path, bookmark.Parse(bookmark.Defaults(), nil))
	require.NoError(t, err)
	assert.Equal(t, 4, added)

	assert.Equal(t, []pdf.OutlineEntry{
		{Title: "封面", Page: 1},
		{Title: "扉页", Page: 2},
		{Title: "版权", Page: 3},
		{Title: "目录", Page: 4},
	}, readOutline(t, path))
	assert.Contains(t, sink.Texts(), "警告：页码 6 超出范围，已跳过书签: 正文")
	assert.Contains(t, sink.Texts(), "正在处理文件 A_合并后的pdf.pdf 的第 1 页，书签: 封面")
	assert.Equal(t, []int{101, 201, 202, 301}, testsupport.PageWidths(t, path))
}

func TestStampKeepsOrderAndDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WritePDF(t, path, 101, 102, 103)

	entries := []bookmark.Entry{{Page: 3, Label: "c"}, {Page: 1, Label: "a"}, {Page: 3, Label: "c"}}
	_, err := New(nil).Stamp(path, entries)
	require.NoError(t, err)

	assert.Equal(t, []pdf.OutlineEntry{{Title: "c", Page: 3}, {Title: "a", Page: 1}, {Title: "c", Page: 3}}, readOutline(t, path))
}

func TestStampTwiceDuplicatesOutline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WritePDF(t, path, 101, 102)
	entries := []bookmark.Entry{{Page: 1, Label: "封面"}, {Page: 2, Label: "正文"}}

	s := New(nil)
	_, err := s.Stamp(path, entries)
	require.NoError(t, err)
	_, err = s.Stamp(path, entries)
	require.NoError(t, err)

	assert.Equal(t, []pdf.OutlineEntry{
		{Title: "封面", Page: 1}, {Title: "正文", Page: 2}, {Title: "封面", Page: 1}, {Title: "正文", Page: 2},
	}, readOutline(t, path))
}

func TestStampNonPositivePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WritePDF(t, path, 101)
	sink := logsink.New(nil, 0)

	added, err := New(sink).Stamp(path, []bookmark.Entry{{Page: 0, Label: "zero"}, {Page: -2, Label: "neg"}})
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Empty(t, readOutline(t, path))
	assert.Contains(t, sink.Texts(), "警告：页码 0 超出范围，已跳过书签: zero")
}

func TestStampCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	testsupport.WriteFile(t, path, "nope")

	_, err := New(nil).Stamp(path, []bookmark.Entry{{Page: 1, Label: "a"}})
	assert.Error(t, err)
}
