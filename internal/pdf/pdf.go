// Package pdf provides the PDF operations used by the merger and stamper.
//
// Functions:
//   - MergePDFs: Concatenates the pages of several PDFs into one output file,
//     without any outline the inputs carried.
//     Inputs: slice of PDF file paths in page order, output file path.
//     Output: error if merge fails, naming the first input that does not
//     decode.
//
// Type Document wraps a decoded PDF held in memory. It can append top-level
// outline items and be saved atomically over any path, including its source.
//
// All writes go to a temporary file in the destination directory that is then
// renamed into place, so a failed write never leaves a truncated PDF behind.
package pdf

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/unicode"
)

// OutlineEntry is a top-level outline item. Page is 1-based; 0 means the
// destination could not be resolved to a page of the document.
type OutlineEntry struct {
	Title string
	Page  int
}

var utf16BOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

func MergePDFs(files []string, outputPath string) error {
	if len(files) == 0 {
		return errors.New("no files to merge")
	}

	src := files[0]
	if len(files) > 1 {
		tmp, err := tempPath(outputPath)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)

		config := model.NewDefaultConfiguration()
		if err := pdfapi.MergeCreateFile(files, tmp, false, config); err != nil {
			return fmt.Errorf("failed to merge PDFs: %w", firstBroken(files, err))
		}
		src = tmp
	}

	// pdfcpu adds one outline item per merged file; the merged document starts
	// without an outline so that stamping fully controls it.
	doc, err := Open(src)
	if err != nil {
		return err
	}
	if err := doc.RemoveBookmarks(); err != nil {
		return err
	}
	return doc.Save(outputPath)
}

// firstBroken returns the read error of the first input that does not decode,
// or mergeErr when every input decodes on its own. pdfcpu's merge error does
// not name the input, so the inputs are re-read only on this failure path.
func firstBroken(files []string, mergeErr error) error {
	for _, f := range files {
		if _, err := Open(f); err != nil {
			return err
		}
	}
	return mergeErr
}

// Document is a fully decoded PDF. It does not hold the source file open.
type Document struct {
	ctx *model.Context
}

func Open(pdfPath string) (*Document, error) {
	ctx, err := pdfapi.ReadContextFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", filepath.Base(pdfPath), err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to count pages of %s: %w", filepath.Base(pdfPath), err)
	}
	return &Document{ctx: ctx}, nil
}

func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// RemoveBookmarks drops the document outline, if any.
func (d *Document) RemoveBookmarks() error {
	root, err := d.ctx.Catalog()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if _, found := root.Find("Outlines"); !found {
		return nil
	}
	delete(root, "Outlines")
	if pm := root.NameEntry("PageMode"); pm != nil && *pm == "UseOutlines" {
		delete(root, "PageMode")
	}
	return nil
}

// AddOutlineItem appends a top-level outline item after any existing ones.
// pageIndex is 0-based.
func (d *Document) AddOutlineItem(title string, pageIndex int) error {
	if pageIndex < 0 || pageIndex >= d.ctx.PageCount {
		return fmt.Errorf("page index %d out of range [0,%d)", pageIndex, d.ctx.PageCount)
	}
	_, pageRef, _, err := d.ctx.PageDict(pageIndex+1, false)
	if err != nil {
		return fmt.Errorf("failed to locate page %d: %w", pageIndex+1, err)
	}
	if pageRef == nil {
		return fmt.Errorf("page %d has no object reference", pageIndex+1)
	}

	outlines, outlinesRef, err := d.outlineRoot()
	if err != nil {
		return err
	}

	t, err := encodeText(title)
	if err != nil {
		return fmt.Errorf("failed to encode title %q: %w", title, err)
	}
	item := types.Dict(map[string]types.Object{
		"Title":  t,
		"Parent": *outlinesRef,
		"Dest":   types.Array{*pageRef, types.Name("Fit")},
	})
	itemRef, err := d.ctx.IndRefForNewObject(item)
	if err != nil {
		return fmt.Errorf("failed to add outline item: %w", err)
	}

	if last, ok := outlines["Last"].(types.IndirectRef); ok {
		prev, err := d.ctx.DereferenceDict(last)
		if err != nil {
			return fmt.Errorf("failed to read last outline item: %w", err)
		}
		prev["Next"] = *itemRef
		item["Prev"] = last
	} else {
		outlines["First"] = *itemRef
	}
	outlines["Last"] = *itemRef

	count := 0
	if c, ok := outlines["Count"].(types.Integer); ok {
		count = int(c)
	}
	outlines["Count"] = types.Integer(count + 1)
	return nil
}

func (d *Document) outlineRoot() (types.Dict, *types.IndirectRef, error) {
	root, err := d.ctx.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if obj, found := root.Find("Outlines"); found {
		switch o := obj.(type) {
		case types.IndirectRef:
			dict, err := d.ctx.DereferenceDict(o)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read outline: %w", err)
			}
			if dict != nil {
				return dict, &o, nil
			}
		case types.Dict:
			ir, err := d.ctx.IndRefForNewObject(o)
			if err != nil {
				return nil, nil, err
			}
			root["Outlines"] = *ir
			return o, ir, nil
		}
	}

	dict := types.Dict(map[string]types.Object{"Type": types.Name("Outlines")})
	ir, err := d.ctx.IndRefForNewObject(dict)
	if err != nil {
		return nil, nil, err
	}
	root["Outlines"] = *ir
	root["PageMode"] = types.Name("UseOutlines")
	return dict, ir, nil
}

// Outline returns the top-level outline items in order.
func (d *Document) Outline() ([]OutlineEntry, error) {
	root, err := d.ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	obj, found := root.Find("Outlines")
	if !found {
		return nil, nil
	}
	outlines, err := d.ctx.DereferenceDict(obj)
	if err != nil || outlines == nil {
		return nil, err
	}

	pages := map[int]int{}
	for i := 1; i <= d.ctx.PageCount; i++ {
		_, ref, _, err := d.ctx.PageDict(i, false)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			pages[ref.ObjectNumber.Value()] = i
		}
	}

	var entries []OutlineEntry
	seen := map[int]bool{}
	next, ok := outlines["First"].(types.IndirectRef)
	for ok {
		nr := next.ObjectNumber.Value()
		if seen[nr] {
			return nil, errors.New("outline items form a cycle")
		}
		seen[nr] = true

		item, err := d.ctx.DereferenceDict(next)
		if err != nil {
			return nil, err
		}
		entry := OutlineEntry{}
		if t, err := d.ctx.Dereference(item["Title"]); err == nil {
			entry.Title, _ = decodeText(t)
		}
		if dest, err := d.ctx.DereferenceArray(item["Dest"]); err == nil && len(dest) > 0 {
			if ref, ok := dest[0].(types.IndirectRef); ok {
				entry.Page = pages[ref.ObjectNumber.Value()]
			}
		}
		entries = append(entries, entry)
		next, ok = item["Next"].(types.IndirectRef)
	}
	return entries, nil
}

// Save writes the document to pdfPath, replacing any existing file.
func (d *Document) Save(pdfPath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(pdfPath), ".pdfbinder-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := pdfapi.WriteContext(d.ctx, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := os.Rename(tmpPath, pdfPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", pdfPath, err)
	}
	return nil
}

// tempPath reserves an unused file name next to target.
func tempPath(target string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), ".pdfbinder-merge-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()
	f.Close()
	return name, nil
}

// encodeText produces a UTF-16BE text string with byte order mark, which PDF
// readers accept for any title.
func encodeText(s string) (types.HexLiteral, error) {
	b, err := utf16BOM.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return "", err
	}
	return types.HexLiteral(hex.EncodeToString(b)), nil
}

func decodeText(o types.Object) (string, error) {
	switch v := o.(type) {
	case types.HexLiteral:
		b, err := hex.DecodeString(string(v))
		if err != nil {
			return "", err
		}
		if bytes.HasPrefix(b, []byte{0xFE, 0xFF}) {
			out, err := utf16BOM.NewDecoder().Bytes(b)
			return string(out), err
		}
		return string(b), nil
	case types.StringLiteral:
		return types.StringLiteralToString(v)
	}
	return "", fmt.Errorf("unexpected text object %T", o)
}
