package helper

import (
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
	reUnsafe   = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
)

func stripMarks(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify turns free text into [a-z0-9-], dropping diacritics. Empty input
// yields "item"; maxLen <= 0 means 100.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripMarks(s)
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// SanitizeFilename keeps the extension and reduces the rest to safe
// characters, e.g. "Lap Report (1).PDF" → "lap-report-1.pdf".
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))
	ext = reUnsafe.ReplaceAllString(ext, "")
	if ext == "." {
		ext = ""
	}
	return Slugify(base, 80) + ext
}

/* ===============================
   Search terms
=================================*/

// NormalizeSearch trims, NFC-normalizes and lower-cases a user search term.
func NormalizeSearch(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern for a case-insensitive substring
// match; use it with "LOWER(col) LIKE ? ESCAPE '\'".
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(NormalizeSearch(term)) + "%"
}

// LikeClause ORs "LOWER(col) LIKE ?" for each column, ready for db.Where
// with the same pattern repeated len(cols) times.
func LikeClause(cols ...string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// LikeArgs repeats pattern n times for LikeClause.
func LikeArgs(pattern string, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = pattern
	}
	return out
}
