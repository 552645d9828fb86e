package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"prompt-insights/internal/models"
)

func TestWriteTrainingJSONL(t *testing.T) {
	examples := []*models.TrainingExample{
		{ID: 1, Question: "Top desks by notional", Answer: "SELECT desk, SUM(notional) FROM trade_new GROUP BY desk;"},
		{ID: 2, Question: "  ", Answer: "SELECT 1;"},
		{ID: 3, Question: "Trades with <10 lots", Answer: "User feedback: use lots < 10"},
	}

	var buf bytes.Buffer
	n, err := writeTrainingJSONL(&buf, "Table: trade_new", examples)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("written = %d, want 2", n)
	}

	raw := append([]byte(nil), buf.Bytes()...)
	if bytes.Contains(raw, []byte(`\u003c`)) {
		t.Error("HTML characters should not be escaped")
	}

	var records []fineTuneRecord
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		var rec fineTuneRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		records = append(records, rec)
	}
	if len(records) != 2 {
		t.Fatalf("lines = %d", len(records))
	}

	msgs := records[0].Messages
	if len(msgs) != 3 || msgs[0].Role != "system" || msgs[0].Content != "Table: trade_new" ||
		msgs[1].Role != "user" || msgs[2].Role != "assistant" {
		t.Errorf("record = %+v", records[0])
	}
}
