// Package orgconv converts org-journal daily files (named YYYYMMDD) into
// org-roam-dailies notes: YYYY-MM-DD.org with an ID property drawer and the
// time entries promoted to top-level headings.
package orgconv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	journalNameRe = regexp.MustCompile(`^\d{8}$`)
	timeEntryRe   = regexp.MustCompile(`^\*\* \d{2}:\d{2}`)
)

// Converter rewrites org-journal files from one directory into org-roam
// format in another.
type Converter struct {
	journalDir string
	roamDir    string
	overwrite  bool
	logger     *log.Logger
}

// Stats summarizes a conversion run.
type Stats struct {
	Total      int
	Successful int
	Failed     int
	Skipped    int
}

type entry struct {
	time    string
	content string
}

// New creates a converter. When overwrite is false, existing target files
// are left alone and counted as skipped.
func New(journalDir, roamDir string, overwrite bool, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Converter{journalDir: journalDir, roamDir: roamDir, overwrite: overwrite, logger: logger}
}

// ListConvertible returns "source -> target" mappings for every journal
// file whose name matches the YYYYMMDD pattern, sorted by name.
func (c *Converter) ListConvertible() ([]string, error) {
	names, err := c.journalFiles()
	if err != nil {
		return nil, err
	}
	mappings := make([]string, 0, len(names))
	for _, name := range names {
		date, err := dateFromFilename(name)
		if err != nil {
			continue
		}
		mappings = append(mappings, fmt.Sprintf("%s -> %s.org", name, date))
	}
	return mappings, nil
}

// ConvertAll converts every matching journal file. Per-file failures are
// counted, not fatal; only an unreadable journal directory aborts the run.
func (c *Converter) ConvertAll(dryRun bool) (Stats, error) {
	names, err := c.journalFiles()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(names)}
	if len(names) == 0 {
		c.logger.Info("no journal files matching YYYYMMDD pattern")
		return stats, nil
	}

	for _, name := range names {
		switch status, err := c.ConvertFile(name, dryRun); {
		case err != nil:
			c.logger.Error("conversion failed", "file", name, "error", err)
			stats.Failed++
		case status == StatusSkipped:
			stats.Skipped++
		default:
			stats.Successful++
		}
	}
	return stats, nil
}

// Status reports what ConvertFile did with a file.
type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusDryRun
)

// ConvertFile converts a single journal file. An existing target is skipped
// unless the converter was created with overwrite enabled.
func (c *Converter) ConvertFile(name string, dryRun bool) (Status, error) {
	date, err := dateFromFilename(name)
	if err != nil {
		return StatusSkipped, err
	}
	target := filepath.Join(c.roamDir, date+".org")

	if !c.overwrite && !dryRun {
		if _, err := os.Stat(target); err == nil {
			c.logger.Warn("target exists, skipping", "file", filepath.Base(target))
			return StatusSkipped, nil
		}
	}

	raw, err := os.ReadFile(filepath.Join(c.journalDir, name))
	if err != nil {
		return StatusSkipped, fmt.Errorf("failed to read journal file: %w", err)
	}

	header, entries := parseEntries(string(raw))
	content := renderRoam(date, entries)

	if dryRun {
		c.logger.Info("would convert", "from", name, "to", date+".org",
			"header", header, "entries", len(entries))
		return StatusDryRun, nil
	}

	if err := os.MkdirAll(c.roamDir, 0o755); err != nil {
		return StatusSkipped, fmt.Errorf("failed to create target directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return StatusSkipped, fmt.Errorf("failed to write target file: %w", err)
	}
	c.logger.Info("converted", "from", name, "to", date+".org")
	return StatusConverted, nil
}

func (c *Converter) journalFiles() ([]string, error) {
	dirents, err := os.ReadDir(c.journalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}
	var names []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		stem := strings.SplitN(d.Name(), ".", 2)[0]
		if journalNameRe.MatchString(stem) {
			names = append(names, d.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// dateFromFilename turns "20210604" (any extension stripped) into
// "2021-06-04", validating that the digits form a real date.
func dateFromFilename(name string) (string, error) {
	stem := strings.SplitN(name, ".", 2)[0]
	if !journalNameRe.MatchString(stem) {
		return "", fmt.Errorf("filename %q does not match YYYYMMDD pattern", name)
	}
	d, err := time.Parse("20060102", stem)
	if err != nil {
		return "", fmt.Errorf("filename %q is not a valid date", name)
	}
	return d.Format("2006-01-02"), nil
}

// parseEntries splits org-journal content into the "* weekday, date" header
// and a list of "** HH:MM" entries with their body text.
func parseEntries(content string) (string, []entry) {
	var (
		header  string
		entries []entry
		cur     string
		body    []string
	)

	flush := func() {
		if cur != "" && len(body) > 0 {
			entries = append(entries, entry{time: cur, content: strings.TrimSpace(strings.Join(body, "\n"))})
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		switch {
		case strings.HasPrefix(line, "* ") && !timeEntryRe.MatchString(line):
			header = strings.TrimSpace(line[2:])
		case timeEntryRe.MatchString(line):
			flush()
			cur = strings.TrimSpace(line[3:])
			body = nil
		case cur != "":
			body = append(body, line)
		}
	}
	flush()
	return header, entries
}

// renderRoam produces the org-roam note: ID property drawer, title, and one
// top-level heading per time entry.
func renderRoam(date string, entries []entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":PROPERTIES:\n:ID:       %s\n:END:\n#+title: %s\n", uuid.NewString(), date)

	for _, e := range entries {
		fmt.Fprintf(&b, "* %s\n", e.time)
		if e.content != "" {
			b.WriteString(e.content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
