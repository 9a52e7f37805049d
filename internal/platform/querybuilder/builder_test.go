package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("p.id", "MIN(r.rank) AS best_rank").
		From("players p").
		LeftJoin("rankings r", "r.player_id = p.id").
		Where(ContainsFold("p.name_last", "del_p%"), IsNotNull("p.birth_date")).
		GroupBy("p.id").
		OrderBy("p.birth_date DESC NULLS LAST", "p.id").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := `SELECT p.id, MIN(r.rank) AS best_rank FROM players p LEFT JOIN rankings r ON r.player_id = p.id ` +
		`WHERE p.name_last ILIKE $1 ESCAPE '\' AND p.birth_date IS NOT NULL GROUP BY p.id ` +
		`ORDER BY p.birth_date DESC NULLS LAST, p.id LIMIT 10 OFFSET 20`
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != `%del\_p\%%` {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_NoOffsetWhenZero(t *testing.T) {
	query, _, err := Select("COUNT(*)").From("players").Limit(0).Offset(0).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT COUNT(*) FROM players" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string  `db:"id"`
		LastName *string `db:"name_last"`
		skipped  string
		Ignored  string `db:"-"`
	}

	last := "Alcaraz"
	query, args, err := InsertModel("players", row{ID: "a0e2", LastName: &last, skipped: "x"}, "")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name_last) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "a0e2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("name_last", "Sinner").
		SetExpr("country", "COALESCE(country, ?)", "it").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "s0a1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET name_last = $1, country = COALESCE(country, $2), updated_at = NOW() WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "Sinner" || args[1] != "it" || args[2] != "s0a1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").Where(Eq("id", "d0j1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM players WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "d0j1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestInCondition_Empty(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query=%s args=%v", query, args)
	}
}
