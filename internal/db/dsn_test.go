package db

import "testing"

func TestIsPostgres(t *testing.T) {
	cases := []struct {
		dsn  string
		want bool
	}{
		{"postgres://u:p@localhost:5432/app", true},
		{"postgresql://u:p@localhost/app", true},
		{"host=localhost user=app dbname=app", true},
		{"file:flowaccount.db", false},
		{"file::memory:?cache=shared", false},
		{"./data/app.db", false},
	}
	for _, c := range cases {
		if got := IsPostgres(c.dsn); got != c.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", c.dsn, got, c.want)
		}
	}
}

func TestNormalizeDSN(t *testing.T) {
	if got := NormalizeDSN(`  "file:flowaccount.db" `); got != "file:flowaccount.db" {
		t.Errorf("sqlite normalize = %q", got)
	}
	got := NormalizeDSN("host=localhost  user=app   dbname=app")
	want := "host=localhost user=app dbname=app sslmode=disable"
	if got != want {
		t.Errorf("kv normalize = %q, want %q", got, want)
	}
	// explicit sslmode is kept
	got = NormalizeDSN("host=h user=u dbname=d sslmode=require")
	if got != "host=h user=u dbname=d sslmode=require" {
		t.Errorf("sslmode overwritten: %q", got)
	}
}
