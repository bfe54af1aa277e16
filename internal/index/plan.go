package index

import (
	"sort"

	"github.com/mfenderov/journal42/internal/journal"
)

// Plan is the set of mutations a build needs: files to (re)index and stored
// paths whose source files no longer exist. Computing it is a pure function
// of the scan and the stored file states, so the decision logic is testable
// without a database.
type Plan struct {
	Index []journal.FileInfo
	Skip  []journal.FileInfo
	Prune []string
}

// BuildPlan diffs the scanned files against the stored per-path modification
// times. A file is reindexed when forced, unseen, or its mtime changed;
// stored paths absent from the scan are pruned so the store never keeps
// chunks for deleted files.
func BuildPlan(files []journal.FileInfo, stored map[string]int64, force bool) Plan {
	var plan Plan

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.Path] = true

		mtime, ok := stored[f.Path]
		if !force && ok && mtime == f.MTimeUnix {
			plan.Skip = append(plan.Skip, f)
			continue
		}
		plan.Index = append(plan.Index, f)
	}

	for path := range stored {
		if !seen[path] {
			plan.Prune = append(plan.Prune, path)
		}
	}
	sort.Strings(plan.Prune)
	return plan
}
