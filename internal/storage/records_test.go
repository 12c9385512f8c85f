package storage

import (
	"strings"
	"testing"
)

// TestListRecordsQueryOrdering pins the read ordering contract: date
// descending, then set number ascending. The in-memory fakes elsewhere
// sort with the same comparator, so a change here must be deliberate.
func TestListRecordsQueryOrdering(t *testing.T) {
	normalized := strings.Join(strings.Fields(listRecordsQuery), " ")
	if !strings.HasSuffix(normalized, "ORDER BY record_date DESC, sets ASC") {
		t.Errorf("list query ordering changed: %q", normalized)
	}
}

// TestListRecordsQueryColumns guards the column list against drifting out
// of step with the Scan targets in ListRecords.
func TestListRecordsQueryColumns(t *testing.T) {
	normalized := strings.Join(strings.Fields(listRecordsQuery), " ")
	want := "SELECT id, record_date, exercise_type, weight, reps, sets, estimated_1rm FROM records"
	if !strings.HasPrefix(normalized, want) {
		t.Errorf("list query columns changed: %q", normalized)
	}
}
