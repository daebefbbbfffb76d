// Package batch walks an input tree and produces one merged, bookmarked PDF
// per directory.
//
// Every directory below the input root, at any depth, is a unit of work. Only
// the PDFs directly inside a directory belong to its merge; nested folders
// produce their own outputs. All outputs land flat in the output folder as
// "<directory name>_合并后的pdf.pdf". Directories are processed one at a time
// and a failure in one never stops the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/merger"
	"go-pdfbinder/internal/stamper"
)

const (
	// MergedSuffix is appended to the directory name to form the output name.
	MergedSuffix = "_合并后的pdf.pdf"
	// LockFileName guards an output folder against concurrent runs.
	LockFileName = ".pdfbinder.lock"
)

var (
	ErrNoInput      = errors.New("no input folder selected")
	ErrInputMissing = errors.New("input folder does not exist")
	ErrOutputBusy   = errors.New("output folder is in use by another run")
)

// Request carries everything a run needs, captured once when it starts.
type Request struct {
	InputDir  string
	OutputDir string
	Rows      []bookmark.Row
}

// Summary counts what happened to the directories of one run.
type Summary struct {
	Dirs    int `json:"dirs"`
	Merged  int `json:"merged"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type Runner struct {
	log     logsink.Logger
	merger  *merger.Merger
	stamper *stamper.Stamper
}

func NewRunner(log logsink.Logger) *Runner {
	if log == nil {
		log = logsink.Discard
	}
	return &Runner{
		log:     log,
		merger:  merger.New(log),
		stamper: stamper.New(log),
	}
}

// MergedName returns the output file name for a directory name.
func MergedName(dirName string) string {
	return dirName + MergedSuffix
}

// Run processes req. Configuration problems and an unusable output folder are
// returned as errors; per-directory failures are logged and counted in the
// summary only. ctx is checked between directories.
func (r *Runner) Run(ctx context.Context, req Request) (Summary, error) {
	var sum Summary
	r.log.Log("开始处理...")

	if strings.TrimSpace(req.InputDir) == "" {
		r.log.Log("错误：请选择输入文件夹！")
		return sum, ErrNoInput
	}
	if info, err := os.Stat(req.InputDir); err != nil || !info.IsDir() {
		r.log.Logf("错误：输入文件夹 '%s' 不存在！", req.InputDir)
		return sum, fmt.Errorf("%w: %s", ErrInputMissing, req.InputDir)
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		r.log.Logf("错误：无法创建输出文件夹 '%s': %v", req.OutputDir, err)
		return sum, fmt.Errorf("create output folder: %w", err)
	}

	lockPath := filepath.Join(req.OutputDir, LockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		r.log.Logf("错误：无法锁定输出文件夹 '%s': %v", req.OutputDir, err)
		return sum, fmt.Errorf("lock output folder: %w", err)
	}
	if !locked {
		r.log.Logf("错误：输出文件夹 '%s' 正在被其他任务使用！", req.OutputDir)
		return sum, ErrOutputBusy
	}
	// The lock file stays behind; deleting it would let a run holding the
	// old inode overlap with one locking a fresh file.
	defer func() { _ = lock.Unlock() }()

	entries := bookmark.Parse(req.Rows, r.log)

	dirs, err := r.collectDirs(req.InputDir, req.OutputDir)
	if err != nil {
		r.log.Logf("错误：无法遍历输入文件夹 '%s': %v", req.InputDir, err)
		return sum, fmt.Errorf("walk input folder: %w", err)
	}

	produced := make(map[string]string)
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			r.log.Log("已取消处理。")
			return sum, err
		}
		sum.Dirs++
		out := filepath.Join(req.OutputDir, MergedName(filepath.Base(dir)))
		merged, err := r.processDir(dir, out, entries)
		switch {
		case err != nil:
			sum.Failed++
			r.log.Logf("错误：处理子文件夹 '%s' 失败: %v", dir, err)
		case merged:
			sum.Merged++
			if prev, ok := produced[out]; ok {
				r.log.Logf("警告：子文件夹 '%s' 的输出覆盖了 '%s' 的合并结果: %s", dir, prev, out)
			}
			produced[out] = dir
		default:
			sum.Skipped++
		}
	}

	r.log.Log("处理完成！")
	return sum, nil
}

// collectDirs lists every directory below root, excluding root and the
// output folder (and its subtree) when it lives inside root. Symlinked
// directories are not followed, so no directory is visited twice.
func (r *Runner) collectDirs(root, outputDir string) ([]string, error) {
	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			r.log.Logf("警告：无法读取文件夹 '%s': %v", path, err)
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && abs == outAbs {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

func (r *Runner) processDir(dir, out string, entries []bookmark.Entry) (merged bool, err error) {
	// pdfcpu may panic on malformed input.
	defer func() {
		if p := recover(); p != nil {
			merged, err = false, fmt.Errorf("panic: %v", p)
		}
	}()

	r.log.Logf("正在处理子文件夹: %s", dir)

	merged, err = r.merger.Merge(dir, out)
	if err != nil || !merged {
		return false, err
	}
	if _, err := r.stamper.Stamp(out, entries); err != nil {
		return false, err
	}
	return true, nil
}
