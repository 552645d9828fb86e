package sqlgen

import (
	"regexp"
	"strings"
)

// forbiddenTokens are window-function markers the analytics database setup
// does not support. Matching is lexical on upper-cased text with whitespace
// before "(" removed, so a column such as "lag_days" passes but "LAG (x)" does not.
var forbiddenTokens = []string{
	"LAG(",
	"LEAD(",
	"OVER(",
	"PARTITION BY",
	"ROW_NUMBER(",
	"DENSE_RANK(",
	"RANK(",
	"NTILE(",
	"FIRST_VALUE(",
	"LAST_VALUE(",
	"WINDOW ",
}

var spaceBeforeParen = regexp.MustCompile(`\s+\(`)

const (
	// FallbackTimeSeries is substituted for time-oriented questions.
	FallbackTimeSeries = "SELECT DATE_FORMAT(as_of_date, '%Y-%m') AS month, SUM(CAST(notional_usd AS DECIMAL(15,2))) AS monthly_notional FROM trade_new GROUP BY month ORDER BY month;"
	// FallbackSector is substituted for everything else.
	FallbackSector = "SELECT c.counterparty_sector, COUNT(t.trade_id) AS trade_count FROM trade_new t JOIN counterparty_new c ON t.reporting_counterparty_id = c.counterparty_id GROUP BY c.counterparty_sector;"
)

var timeWords = []string{"month", "trend", "time", "year", "change", "quarter", "period"}

// ForbiddenConstruct reports the first forbidden token found in sql.
func ForbiddenConstruct(sql string) (string, bool) {
	norm := spaceBeforeParen.ReplaceAllString(strings.ToUpper(sql), "(")
	norm = strings.Join(strings.Fields(norm), " ") + " "
	for _, tok := range forbiddenTokens {
		if strings.Contains(norm, tok) {
			return strings.TrimSpace(tok), true
		}
	}
	return "", false
}

// FallbackQuery picks the canned replacement for a rejected statement.
func FallbackQuery(question string) string {
	q := strings.ToLower(question)
	for _, w := range timeWords {
		if strings.Contains(q, w) {
			return FallbackTimeSeries
		}
	}
	return FallbackSector
}
