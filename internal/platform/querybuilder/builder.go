package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type InsertBuilder struct {
	table      string
	columns    []string
	rows       [][]any
	conflict   []string
	keepOnNull map[string]struct{}
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflictMerge turns the insert into an upsert: rows colliding on keys
// take the incoming value for every other inserted column.
func (b *InsertBuilder) OnConflictMerge(keys ...string) *InsertBuilder {
	b.conflict = append([]string(nil), keys...)
	return b
}

// KeepExistingWhenNull makes the merge leave columns untouched when the
// incoming value is NULL.
func (b *InsertBuilder) KeepExistingWhenNull(columns ...string) *InsertBuilder {
	if b.keepOnNull == nil {
		b.keepOnNull = make(map[string]struct{}, len(columns))
	}
	for _, col := range columns {
		b.keepOnNull[col] = struct{}{}
	}
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(placeholder(argIndex))
			args = append(args, value)
			argIndex++
		}
		buf.WriteString(")")
	}

	if len(b.conflict) > 0 {
		if err := b.appendOnConflict(&buf); err != nil {
			return "", nil, err
		}
	}

	return buf.String(), args, nil
}

func (b *InsertBuilder) appendOnConflict(buf *strings.Builder) error {
	isKey := make(map[string]struct{}, len(b.conflict))
	for _, key := range b.conflict {
		isKey[key] = struct{}{}
	}
	for _, key := range b.conflict {
		if !contains(b.columns, key) {
			return fmt.Errorf("conflict key %s is not an inserted column", key)
		}
	}

	buf.WriteString(" ON CONFLICT (")
	buf.WriteString(strings.Join(b.conflict, ", "))
	buf.WriteString(")")

	updates := make([]string, 0, len(b.columns))
	for _, col := range b.columns {
		if _, ok := isKey[col]; ok {
			continue
		}
		if _, keep := b.keepOnNull[col]; keep {
			updates = append(updates, col+" = COALESCE(EXCLUDED."+col+", "+b.table+"."+col+")")
			continue
		}
		updates = append(updates, col+" = EXCLUDED."+col)
	}
	if len(updates) == 0 {
		buf.WriteString(" DO NOTHING")
		return nil
	}
	buf.WriteString(" DO UPDATE SET ")
	buf.WriteString(strings.Join(updates, ", "))
	return nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
