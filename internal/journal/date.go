// Package journal handles the raw journal files on disk: discovering them,
// reading dates out of their names, and splitting their text into chunks.
package journal

import (
	"path/filepath"
	"regexp"
	"time"
)

// DateLayout is the canonical form dates are stored and displayed in.
const DateLayout = "2006-01-02"

// datePattern pairs a regexp over the file path with the time layout its
// capture groups reassemble into. Patterns are tried in order; the first
// match that survives time.Parse wins.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

var datePatterns = []datePattern{
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},
	{regexp.MustCompile(`(\d{8})`), "20060102"},
	{regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`), "01-02-2006"},
	{regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`), "01/02/2006"},
	{regexp.MustCompile(`(\d{4}/\d{2}/\d{2})`), "2006/01/02"},
}

// ExtractDate pulls a calendar date out of a file path. It checks the
// base name first, then the full path so directory layouts like
// 2021/06/04.org still resolve. An unparseable or missing date is not an
// error; callers must tolerate undated entries.
func ExtractDate(path string) (time.Time, bool) {
	slashed := filepath.ToSlash(path)

	for _, candidate := range []string{filepath.Base(slashed), slashed} {
		for _, p := range datePatterns {
			m := p.re.FindStringSubmatch(candidate)
			if m == nil {
				continue
			}
			// Digits can match a pattern without being a real date
			// (month 13, day 40), so validate before accepting.
			d, err := time.Parse(p.layout, m[1])
			if err != nil {
				continue
			}
			return d, true
		}
	}
	return time.Time{}, false
}
