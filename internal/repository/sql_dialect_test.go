package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"title", " "}, []string{"tags"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != `title LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\'` {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"title"}, []string{"tags"})
	if !strings.Contains(condition, "title ILIKE ?") || !strings.Contains(condition, "CAST(tags AS TEXT) ILIKE ?") {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape: %s", got)
	}
	if args := repeatLikeArgs("%x%", 3); len(args) != 3 || args[2] != "%x%" {
		t.Fatalf("unexpected args: %v", args)
	}
}
