// Package executor drains a Job queue against the filesystem with dry-run
// semantics, collision-safe renaming, and per-job error isolation. Moves
// are a single rename; copies use an atomic-replace idiom (write to a temp
// path, fsync, rename into place), which is also the EXDEV fallback
// (copy-then-unlink) when a move can't cross filesystems.
package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/progress"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Executor drains a Job list sequentially.
type Executor struct {
	dryRun bool
	bus    *progress.Bus
}

// New creates an Executor.
func New(dryRun bool, bus *progress.Bus) *Executor {
	return &Executor{dryRun: dryRun, bus: bus}
}

// BatchResult is the outcome of executing a Job list. SuccessCount counts
// completed Delete/Move/Copy jobs; Keep and Ignore jobs are logged but not
// counted.
type BatchResult struct {
	SuccessCount int
	FailureCount int
	Log          []string
}

// Run executes every job, isolating per-job failures into the batch result
// rather than aborting.
func (e *Executor) Run(jobs []types.Job) BatchResult {
	var result BatchResult

	for _, job := range jobs {
		line, err := e.execute(job)
		prefix := ""
		if e.dryRun {
			prefix = "[dry-run] "
		}
		result.Log = append(result.Log, prefix+line)

		if err != nil {
			result.FailureCount++
			e.warn(job, err)
			continue
		}
		if job.Action.Kind == types.ActionKeep || job.Action.Kind == types.ActionIgnore {
			continue
		}
		result.SuccessCount++
	}

	return result
}

func (e *Executor) execute(job types.Job) (string, error) {
	switch job.Action.Kind {
	case types.ActionKeep:
		return fmt.Sprintf("keep %s", job.File.Path), nil
	case types.ActionIgnore:
		return fmt.Sprintf("ignore %s", job.File.Path), nil
	case types.ActionDelete:
		return e.delete(job.File)
	case types.ActionMove:
		return e.moveOrCopy(job.File, job.Action.DestDir, true)
	case types.ActionCopy:
		return e.moveOrCopy(job.File, job.Action.DestDir, false)
	default:
		return "", errs.Newf(errs.ActionError, "unknown action kind %v", job.Action.Kind)
	}
}

func (e *Executor) delete(f *types.FileRecord) (string, error) {
	line := fmt.Sprintf("delete %s", f.Path)
	if e.dryRun {
		return line, nil
	}
	if err := os.Remove(f.Path); err != nil {
		return line, errs.New(errs.ActionError, err)
	}
	return line, nil
}

func (e *Executor) moveOrCopy(f *types.FileRecord, destDir string, move bool) (string, error) {
	verb := "copy"
	if move {
		verb = "move"
	}

	dest, err := resolveDestination(destDir, f.Path)
	if err != nil {
		return fmt.Sprintf("%s %s -> %s", verb, f.Path, destDir), errs.New(errs.ActionError, err)
	}
	line := fmt.Sprintf("%s %s -> %s", verb, f.Path, dest)

	if e.dryRun {
		return line, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return line, errs.New(errs.ActionError, err)
	}

	if move {
		if err := renameOrFallback(f.Path, dest); err != nil {
			return line, errs.New(errs.ActionError, err)
		}
		return line, nil
	}

	if err := copyFile(f.Path, dest); err != nil {
		return line, errs.New(errs.ActionError, err)
	}
	return line, nil
}

// resolveDestination computes destDir/<basename>, disambiguating a
// pre-existing path as "<stem>_copy(N)<ext>" with the smallest N >= 1 that
// does not already exist.
func resolveDestination(destDir, sourcePath string) (string, error) {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := filepath.Join(destDir, base)
	for n := 1; ; n++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			// Stat failed for a reason other than non-existence (e.g.
			// permission denied on the parent dir): surface it rather than
			// looping forever.
			return "", err
		}
		candidate = filepath.Join(destDir, fmt.Sprintf("%s_copy(%d)%s", stem, n, ext))
	}
}

// renameOrFallback performs the move, falling back to copy-then-unlink with
// fsync of the destination before unlinking the source when the rename
// cannot span filesystems.
func renameOrFallback(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dest); err != nil {
		return fmt.Errorf("cross-device move, copy fallback failed: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("cross-device move, copy succeeded but source unlink failed: %w", err)
	}
	return nil
}

// copyFile copies src to dest byte-for-byte and fsyncs the destination
// before returning, so a crash mid-copy never leaves a truncated file that
// a subsequent unlink-of-source would make permanent data loss.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	tmp := dest + ".tmp"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (e *Executor) warn(job types.Job, err error) {
	if e.bus != nil {
		e.bus.Send(progress.StatusUpdate("execute", fmt.Sprintf("%s %s: %v", job.Action.Kind, job.File.Path, err)))
	}
}
