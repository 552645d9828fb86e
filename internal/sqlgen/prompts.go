package sqlgen

import (
	"fmt"
	"strings"

	"prompt-insights/internal/models"
)

// MaxTrainingSnippets caps how many training examples go into one prompt.
const MaxTrainingSnippets = 3

const tableMapping = `TABLE AND COLUMN MAPPING (authoritative):
- trade_new: trade_id, notional_usd, batch_mtm, as_of_date, reporting_counterparty_id
- counterparty_new: counterparty_id, counterparty_name, counterparty_sector, mpe, mpe_limit, as_of_date
- concentration_new: concentration_group, counterparty_count, entity

Notes:
- MPE (market price exposure) lives only in counterparty_new.
- counterparty_sector lives only in counterparty_new.
- counterparty_count lives only in concentration_new.
- Numeric values are stored as text: CAST(... AS DECIMAL(15,2)) before summing.
- Exclude NULL, empty and zero exposures: mpe IS NOT NULL AND mpe != '' AND mpe != '0'.
- Aliases: t = trade_new, c = counterparty_new, con = concentration_new.`

const workedExamples = `EXAMPLES

Trades per sector:
SELECT c.counterparty_sector, COUNT(t.trade_id) AS trade_count
FROM trade_new t
JOIN counterparty_new c ON t.reporting_counterparty_id = c.counterparty_id
GROUP BY c.counterparty_sector;

Concentration by group:
SELECT con.concentration_group, SUM(CAST(con.counterparty_count AS UNSIGNED)) AS total_count
FROM concentration_new con
GROUP BY con.concentration_group;

Monthly notional for 2024:
SELECT DATE_FORMAT(as_of_date, '%Y-%m') AS month, SUM(CAST(notional_usd AS DECIMAL(15,2))) AS monthly_notional
FROM trade_new
WHERE YEAR(as_of_date) = 2024
GROUP BY month
ORDER BY month;

Top sectors by notional:
SELECT c.counterparty_sector, SUM(CAST(t.notional_usd AS DECIMAL(15,2))) AS total_notional
FROM trade_new t
JOIN counterparty_new c ON t.reporting_counterparty_id = c.counterparty_id
WHERE t.notional_usd IS NOT NULL
GROUP BY c.counterparty_sector
ORDER BY total_notional DESC
LIMIT 10;`

const restrictions = `RESTRICTIONS
- Never use window functions: no LAG, LEAD, OVER, PARTITION BY, ROW_NUMBER, RANK.
- Use only SELECT, FROM, WHERE, JOIN, GROUP BY, ORDER BY, LIMIT and COUNT/SUM/AVG/MIN/MAX.
- Join at most two tables.
- Compare periods with separate aggregates or subqueries.
- Check every column exists in the table you use it from.
- Filter NULL values in WHERE and add LIMIT where the result could be large.`

func buildGenerationPrompt(question, schema string, examples []models.TrainingExample) string {
	var sb strings.Builder
	sb.WriteString("Write one MySQL query that answers the question, using only the schema below.\n\n")
	fmt.Fprintf(&sb, "SCHEMA:\n%s\n\n", strings.TrimSpace(schema))
	fmt.Fprintf(&sb, "QUESTION: %s\n\n", question)

	if len(examples) > 0 {
		sb.WriteString("PREVIOUSLY APPROVED ANSWERS (follow their patterns when relevant):\n")
		for i, ex := range examples {
			fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s\n", i+1, ex.Question, ex.Answer)
			if ex.Context != "" {
				fmt.Fprintf(&sb, "   Context: %s\n", ex.Context)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(tableMapping)
	sb.WriteString("\n\n")
	sb.WriteString(workedExamples)
	sb.WriteString("\n\n")
	sb.WriteString(restrictions)
	sb.WriteString("\n\nReturn only the SQL statement, without explanation.\n\nSQL:")
	return sb.String()
}

func buildFixPrompt(failedSQL, dbError, schema string) string {
	return fmt.Sprintf(`This MySQL query failed:
%s

Database error:
%s

Schema:
%s

Correct the query: fix column and table names that do not exist, syntax errors and type or format mismatches.
Do not use window functions.
Return only the corrected SQL statement, without explanation.`, failedSQL, dbError, strings.TrimSpace(schema))
}

func buildAlternativesPrompt(question, sql, schema string) string {
	return fmt.Sprintf(`The user asked: %q
The generated query was:
%s
It returned no rows or failed.

Schema:
%s

Suggest 2-3 alternative approaches, each with a runnable MySQL query in a `+"```sql"+` block:
- a different date format or range
- related tables or columns
- a looser filter
- a query that inspects what data is available
Be brief and practical.`, question, sql, strings.TrimSpace(schema))
}

func buildExplainPrompt(sql string) string {
	return fmt.Sprintf(`Explain this SQL query in plain language for a business user.
Say which tables it reads and what the result represents.

%s`, sql)
}

func buildInterpretPrompt(question string) string {
	return fmt.Sprintf(`Interpret this analytics question and answer with JSON only:
{"data_requested": "...", "analysis_type": "...", "context_significance": "..."}

data_requested: the metric or data the user wants (for example "total trade notional").
analysis_type: the kind of analysis (comparison between periods, ranking, trend).
context_significance: why it matters for risk or finance.

Question: %s

JSON:`, question)
}
