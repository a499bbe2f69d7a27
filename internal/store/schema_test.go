package store

import (
	"testing"

	"entgo.io/ent"

	"github.com/abhisek/climassist/ent/schema"
)

// columns returns the column names of table.
func columns(t *testing.T, s *Store, table string) map[string]bool {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		t.Fatalf("table_info %s: %v", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols[name] = true
	}
	return cols
}

func TestSchemaMatchesEntDefinitions(t *testing.T) {
	s := openTestStore(t)
	mixinFields := schema.EventMixin{}.Fields()

	tests := []struct {
		table  string
		fields []ent.Field
	}{
		{tableCompletions, schema.CompletionEvent{}.Fields()},
		{tableRewards, schema.RewardEvent{}.Fields()},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			cols := columns(t, s, tt.table)
			if len(cols) == 0 {
				t.Fatalf("table %s missing", tt.table)
			}
			want := append(append([]ent.Field{}, mixinFields...), tt.fields...)
			for _, f := range want {
				name := f.Descriptor().Name
				if !cols[name] {
					t.Errorf("%s: column %q declared in ent schema but not created", tt.table, name)
				}
			}
			// id plus every declared field.
			if len(cols) != len(want)+1 {
				t.Errorf("%s: %d columns, want %d", tt.table, len(cols), len(want)+1)
			}
		})
	}
}
