package sqlgen

import (
	"regexp"
	"strings"
)

var langTags = map[string]bool{"sql": true, "mysql": true, "sqlite": true, "postgresql": true}

// CleanSQL turns raw model output into a single statement terminated by
// exactly one semicolon. Code fences, a leading language tag and surrounding
// whitespace are removed. CleanSQL(CleanSQL(x)) == CleanSQL(x).
func CleanSQL(raw string) string {
	s := strings.TrimSpace(raw)

	for {
		prev := s
		s = stripFences(s)
		s = stripLangTag(s)
		s = strings.TrimSpace(s)
		if s == prev {
			break
		}
	}

	s = strings.TrimRight(s, "; \t\r\n")
	return s + ";"
}

func stripFences(s string) string {
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			tag := strings.TrimSpace(strings.TrimPrefix(s[:nl], "```"))
			if tag == "" || langTags[strings.ToLower(tag)] {
				s = s[nl+1:]
			} else {
				s = strings.TrimPrefix(s, "```")
			}
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return s
}

// stripLangTag drops a first line that is only a language name, as left
// behind by fences like "```\nsql\nSELECT ...".
func stripLangTag(s string) string {
	first, rest, found := strings.Cut(s, "\n")
	if found && langTags[strings.ToLower(strings.TrimSpace(first))] {
		return rest
	}
	return s
}

var (
	clauseBreak = regexp.MustCompile(`(?i)\s+\b(FROM|WHERE|GROUP BY|ORDER BY|HAVING|LIMIT|UNION(?: ALL)?|(?:LEFT |RIGHT |INNER |CROSS )?JOIN)\b\s+`)
	condBreak   = regexp.MustCompile(`(?i)\s+\b(AND|OR)\b\s+`)
	spaces      = regexp.MustCompile(`\s+`)
)

// FormatSQL lays a statement out one clause per line for display. Only
// keywords are upper-cased; identifiers and literals keep their case.
// The result is never executed.
func FormatSQL(sql string) string {
	s := strings.TrimSpace(spaces.ReplaceAllString(sql, " "))
	if s == "" {
		return s
	}
	s = clauseBreak.ReplaceAllStringFunc(s, func(m string) string {
		kw := strings.ToUpper(strings.TrimSpace(m))
		if strings.HasSuffix(kw, "JOIN") {
			return "\n  " + kw + " "
		}
		return "\n" + kw + " "
	})
	s = condBreak.ReplaceAllStringFunc(s, func(m string) string {
		return "\n  " + strings.ToUpper(strings.TrimSpace(m)) + " "
	})
	return s
}
