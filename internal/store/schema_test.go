package store

import (
	"sort"
	"testing"

	"entgo.io/ent"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/ent/schema"
)

type declared interface {
	Mixin() []ent.Mixin
	Fields() []ent.Field
}

func declaredColumns(d declared) []string {
	var fields []ent.Field
	for _, m := range d.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, d.Fields()...)

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.Descriptor().Name)
	}
	sort.Strings(cols)
	return cols
}

func tableColumns(t *testing.T, s *Store, table string) []string {
	t.Helper()
	rows, err := s.DB().Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		t.Fatalf("table_info(%s): %v", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	sort.Strings(cols)
	return cols
}

func TestDDLMatchesSchemaDeclarations(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		table  string
		schema declared
	}{
		{articlesTable, schema.Article{}},
		{quizzesTable, schema.Quiz{}},
		{attemptsTable, schema.Attempt{}},
		{llmEventsTable, schema.LLMRequestEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			want := declaredColumns(tt.schema)
			got := tableColumns(t, s, tt.table)
			if len(got) != len(want) {
				t.Fatalf("columns = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("columns = %v, want %v", got, want)
				}
			}
		})
	}
}
