package main

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tennis-players/internal/platform/logging"
)

func TestRun_RequiresCommand(t *testing.T) {
	if err := run(nil, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", " ")
	err := run([]string{"up"}, logging.NewNop())
	if err == nil || errors.Is(err, errUsage) {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}

func TestWithPreparedBinaryDisabled(t *testing.T) {
	t.Parallel()

	got := withPreparedBinaryDisabled("postgres://u:p@localhost:5432/tennis_players?sslmode=disable", true)
	want := "postgres://u:p@localhost:5432/tennis_players?disable_prepared_binary_result=yes&sslmode=disable"
	if got != want {
		t.Fatalf("unexpected url:\n got=%s\nwant=%s", got, want)
	}

	keep := "postgres://localhost/tennis_players?disable_prepared_binary_result=no"
	if got := withPreparedBinaryDisabled(keep, true); got != keep {
		t.Fatalf("explicit value should win, got %s", got)
	}
	if got := withPreparedBinaryDisabled("postgres://localhost/x", false); got != "postgres://localhost/x" {
		t.Fatalf("disabled flag should leave url untouched, got %s", got)
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("got %s want %s", got, dir)
	}
}
