package querybuilder

import "testing"

func TestInsertBuilder_OnConflictMerge(t *testing.T) {
	query, args, err := InsertInto("fighter_stats").
		Columns("event_id", "fighter_id", "knockdowns").
		Values("e1", "f1", 2).
		OnConflictMerge("event_id", "fighter_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO fighter_stats (event_id, fighter_id, knockdowns) VALUES ($1, $2, $3) " +
		"ON CONFLICT (event_id, fighter_id) DO UPDATE SET knockdowns = EXCLUDED.knockdowns"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_OnlyKeysDoesNothing(t *testing.T) {
	query, _, err := InsertInto("fighters").Columns("id").Values("f1").OnConflictMerge("id").ToSQL()
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}
	if want := "INSERT INTO fighters (id) VALUES ($1) ON CONFLICT (id) DO NOTHING"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestInsertBuilder_UnknownConflictKey(t *testing.T) {
	_, _, err := InsertInto("fighters").Columns("id").Values("f1").OnConflictMerge("slug").ToSQL()
	if err == nil {
		t.Fatalf("expected error for conflict key outside inserted columns")
	}
}

func TestModelValues(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"display_name"`
		Internal string
		skipped  string `db:"skipped"`
	}

	cols, vals, err := ModelValues(&row{ID: "f1", Name: "Fighter One", skipped: "x"})
	if err != nil {
		t.Fatalf("read model values: %v", err)
	}
	if len(cols) != 2 || cols[0] != "id" || cols[1] != "display_name" {
		t.Fatalf("unexpected columns: %+v", cols)
	}
	if len(vals) != 2 || vals[0] != "f1" || vals[1] != "Fighter One" {
		t.Fatalf("unexpected values: %+v", vals)
	}

	if _, _, err := ModelValues(struct{ Name string }{Name: "x"}); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
	var nilRow *row
	if _, _, err := ModelValues(nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestInsertBuilder_KeepExistingWhenNull(t *testing.T) {
	query, _, err := InsertInto("fighters").
		Columns("id", "display_name", "nickname").
		Values("f1", "Fighter One", nil).
		OnConflictMerge("id").
		KeepExistingWhenNull("nickname").
		ToSQL()
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO fighters (id, display_name, nickname) VALUES ($1, $2, $3) ON CONFLICT (id) " +
		"DO UPDATE SET display_name = EXCLUDED.display_name, nickname = COALESCE(EXCLUDED.nickname, fighters.nickname)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}
