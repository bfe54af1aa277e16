package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withTestDB(t *testing.T) string {
	t.Helper()
	testDBPath := filepath.Join(t.TempDir(), "nested", "test.db")

	oldDBPath := cfg.DBPath
	cfg.DBPath = testDBPath
	t.Cleanup(func() { cfg.DBPath = oldDBPath })
	return testDBPath
}

func TestGetStore_CreatesDatabaseAndParentDir(t *testing.T) {
	testDBPath := withTestDB(t)

	store, err := getStore()
	if err != nil {
		t.Fatalf("getStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(testDBPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestListEntries_EmptyDatabase(t *testing.T) {
	withTestDB(t)

	store, err := getStore()
	if err != nil {
		t.Fatalf("getStore failed: %v", err)
	}
	defer store.Close()

	entries, err := store.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("fresh database has %d entries", len(entries))
	}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("itoa", func(t *testing.T) {
		tests := []struct {
			input    int
			expected string
		}{
			{0, "0"},
			{42, "42"},
			{-5, "-5"},
		}
		for _, tt := range tests {
			if got := itoa(tt.input); got != tt.expected {
				t.Errorf("itoa(%d) = %s, expected %s", tt.input, got, tt.expected)
			}
		}
	})

	t.Run("snippet", func(t *testing.T) {
		if got := snippet("short  text\nwith   gaps"); got != "short text with gaps" {
			t.Errorf("snippet collapsed whitespace wrong: %q", got)
		}

		long := strings.Repeat("word ", 100)
		got := snippet(long)
		if !strings.HasSuffix(got, "…") {
			t.Errorf("long snippet should be truncated with ellipsis: %q", got)
		}
		if len([]rune(got)) != 201 {
			t.Errorf("truncated snippet is %d runes, want 201", len([]rune(got)))
		}
	})
}
