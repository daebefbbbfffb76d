// Package stamper writes a flat bookmark outline onto an existing PDF.
package stamper

import (
	"fmt"
	"path/filepath"

	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/pdf"
)

type Stamper struct {
	log logsink.Logger
}

func New(log logsink.Logger) *Stamper {
	if log == nil {
		log = logsink.Discard
	}
	return &Stamper{log: log}
}

// Stamp rewrites pdfPath with one top-level outline item per entry, in entry
// order, after any outline items already present. Entries pointing past the
// last page are logged and skipped. It returns the number of items added.
func (s *Stamper) Stamp(pdfPath string, entries []bookmark.Entry) (int, error) {
	doc, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, err
	}

	name := filepath.Base(pdfPath)
	pages := doc.PageCount()
	added := 0
	for _, e := range entries {
		if e.Page < 1 || e.Page > pages {
			s.log.Logf("警告：页码 %d 超出范围，已跳过书签: %s", e.Page, e.Label)
			continue
		}
		if err := doc.AddOutlineItem(e.Label, e.Page-1); err != nil {
			return 0, fmt.Errorf("bookmark %q on page %d: %w", e.Label, e.Page, err)
		}
		s.log.Logf("正在处理文件 %s 的第 %d 页，书签: %s", name, e.Page, e.Label)
		added++
	}

	if err := doc.Save(pdfPath); err != nil {
		return 0, err
	}
	s.log.Logf("已保存添加书签后的PDF文件到: %s", pdfPath)
	return added, nil
}
