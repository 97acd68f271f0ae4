// Package planner implements the Action Planner: converting
// DuplicateSets and DirectoryDiffs into a Job list under a selection
// strategy and a run mode.
package planner

import (
	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/strategy"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Mode selects which workflow the planner runs.
type Mode int

const (
	// ModeListOnly produces no jobs; sets are surfaced for display or
	// serialization only.
	ModeListOnly Mode = iota
	// ModeDelete keeps the strategy-chosen keeper and deletes the rest.
	ModeDelete
	// ModeMove keeps the keeper and moves the rest into a destination dir.
	ModeMove
	// ModeCopyMissing emits one Copy job per DirectoryDiff entry.
	ModeCopyMissing
)

// Plan builds the Job list for a deduplication run (ModeListOnly/Delete/Move).
// moveDestDir is only consulted in ModeMove. The planner enforces pairwise-
// distinct paths across the returned Job list.
func Plan(sets []*types.DuplicateSet, s types.SelectionStrategy, mode Mode, moveDestDir string) ([]types.Job, error) {
	var jobs []types.Job
	seen := make(map[string]bool)

	for _, set := range sets {
		if mode == ModeListOnly {
			continue
		}

		keeper, others, err := strategy.Select(set, s)
		if err != nil {
			return nil, err
		}

		if err := addJob(&jobs, seen, types.Job{Action: types.Action{Kind: types.ActionKeep}, File: keeper}); err != nil {
			return nil, err
		}

		for _, f := range others {
			var job types.Job
			switch mode {
			case ModeDelete:
				job = types.Job{Action: types.Action{Kind: types.ActionDelete}, File: f}
			case ModeMove:
				job = types.Job{Action: types.Action{Kind: types.ActionMove, DestDir: moveDestDir}, File: f}
			default:
				return nil, errs.Newf(errs.InvalidConfig, "unsupported planner mode %d", mode)
			}
			if err := addJob(&jobs, seen, job); err != nil {
				return nil, err
			}
		}
	}

	return jobs, nil
}

// PlanCopyMissing builds one Copy job per file in diff, destined for
// targetRoot.
func PlanCopyMissing(diff *types.DirectoryDiff, targetRoot string) ([]types.Job, error) {
	var jobs []types.Job
	seen := make(map[string]bool)

	for _, f := range diff.Missing {
		job := types.Job{Action: types.Action{Kind: types.ActionCopy, DestDir: targetRoot}, File: f}
		if err := addJob(&jobs, seen, job); err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

func addJob(jobs *[]types.Job, seen map[string]bool, job types.Job) error {
	if seen[job.File.Path] {
		return errs.Newf(errs.PlanError, "duplicate job for path %q", job.File.Path)
	}
	seen[job.File.Path] = true
	*jobs = append(*jobs, job)
	return nil
}
