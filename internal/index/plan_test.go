package index

import (
	"testing"

	"github.com/mfenderov/journal42/internal/journal"
)

func file(path string, mtime int64) journal.FileInfo {
	return journal.FileInfo{Path: path, MTimeUnix: mtime}
}

func TestBuildPlan_FreshStore(t *testing.T) {
	plan := BuildPlan([]journal.FileInfo{file("a.txt", 1), file("b.txt", 2)}, nil, false)

	if len(plan.Index) != 2 || len(plan.Skip) != 0 || len(plan.Prune) != 0 {
		t.Errorf("unexpected plan: %+v", plan)
	}
}

func TestBuildPlan_UnchangedFilesSkip(t *testing.T) {
	stored := map[string]int64{"a.txt": 1, "b.txt": 2}
	plan := BuildPlan([]journal.FileInfo{file("a.txt", 1), file("b.txt", 2)}, stored, false)

	if len(plan.Index) != 0 {
		t.Errorf("unchanged files should not be reindexed: %+v", plan.Index)
	}
	if len(plan.Skip) != 2 {
		t.Errorf("skip = %+v, want both files", plan.Skip)
	}
}

func TestBuildPlan_ChangedMTimeReindexes(t *testing.T) {
	stored := map[string]int64{"a.txt": 1}
	plan := BuildPlan([]journal.FileInfo{file("a.txt", 99)}, stored, false)

	if len(plan.Index) != 1 || plan.Index[0].Path != "a.txt" {
		t.Errorf("changed file should be reindexed: %+v", plan)
	}
}

func TestBuildPlan_ForceReindexesEverything(t *testing.T) {
	stored := map[string]int64{"a.txt": 1}
	plan := BuildPlan([]journal.FileInfo{file("a.txt", 1)}, stored, true)

	if len(plan.Index) != 1 || len(plan.Skip) != 0 {
		t.Errorf("force should reindex unchanged files: %+v", plan)
	}
}

func TestBuildPlan_PrunesDeletedPaths(t *testing.T) {
	stored := map[string]int64{"gone.txt": 1, "kept.txt": 2, "also-gone.txt": 3}
	plan := BuildPlan([]journal.FileInfo{file("kept.txt", 2)}, stored, false)

	if len(plan.Prune) != 2 {
		t.Fatalf("prune = %+v, want 2 paths", plan.Prune)
	}
	// Deterministic order.
	if plan.Prune[0] != "also-gone.txt" || plan.Prune[1] != "gone.txt" {
		t.Errorf("prune order: %+v", plan.Prune)
	}
}
