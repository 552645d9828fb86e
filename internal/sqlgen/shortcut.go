package sqlgen

import "strings"

// AdminShortcut answers administrative questions ("show tables", "active users")
// with a fixed statement. Rules are checked in order; the first match wins.
func AdminShortcut(question string) (string, bool) {
	q := strings.ToLower(question)
	has := func(words ...string) bool {
		for _, w := range words {
			if !strings.Contains(q, w) {
				return false
			}
		}
		return true
	}

	switch {
	case (has("show") || has("all")) && has("users"):
		if has("active") {
			return "SHOW PROCESSLIST;", true
		}
		return "SELECT User, Host FROM mysql.user;", true
	case has("active", "user"):
		return "SHOW PROCESSLIST;", true
	case has("show", "databases"):
		return "SHOW DATABASES;", true
	case has("show", "tables"):
		return "SHOW TABLES;", true
	case has("show", "processes"):
		return "SHOW PROCESSLIST;", true
	case has("current", "user"):
		return "SELECT USER(), CURRENT_USER();", true
	}
	return "", false
}
