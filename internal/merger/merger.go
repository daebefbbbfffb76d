// Package merger concatenates the PDFs found directly inside one folder.
//
// Files whose name starts with the cover marker come first, in directory
// listing order; every other PDF follows in code-point order of its name.
package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/pdf"
	"go-pdfbinder/internal/utils"
)

// DefaultCoverMarker is the filename prefix of cover files.
const DefaultCoverMarker = "封面"

type Merger struct {
	CoverMarker string
	log         logsink.Logger
}

func New(log logsink.Logger) *Merger {
	if log == nil {
		log = logsink.Discard
	}
	return &Merger{CoverMarker: DefaultCoverMarker, log: log}
}

// Order returns names with cover files first (relative order kept) followed
// by the remaining names sorted lexically.
func Order(names []string, marker string) []string {
	var cover, other []string
	for _, name := range names {
		if utils.HasMarkerPrefix(name, marker) {
			cover = append(cover, name)
		} else {
			other = append(other, name)
		}
	}
	sort.Strings(other)
	return append(cover, other...)
}

// Merge writes every page of every PDF directly inside sourceDir to
// outputPath. It returns false, without writing anything, when the folder has
// no PDFs. A PDF that cannot be decoded fails the whole folder, with an error
// naming that file, and leaves no output file.
func (m *Merger) Merge(sourceDir, outputPath string) (bool, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return false, fmt.Errorf("read folder %s: %w", sourceDir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && utils.IsPDF(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		m.log.Logf("警告：文件夹 '%s' 中没有 PDF 文件，跳过合并。", sourceDir)
		return false, nil
	}

	ordered := Order(names, m.CoverMarker)
	files := make([]string, 0, len(ordered))
	for _, name := range ordered {
		m.log.Logf("正在合并文件: %s", name)
		files = append(files, filepath.Join(sourceDir, name))
	}

	if err := pdf.MergePDFs(files, outputPath); err != nil {
		return false, err
	}
	m.log.Logf("已保存合并后的PDF文件到: %s", outputPath)
	return true, nil
}
