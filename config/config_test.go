package config

import (
	"strings"
	"testing"
	"time"
)

func TestMySQLDSNFromURL(t *testing.T) {
	dsn, name, err := mysqlDSNFromURL("mysql://booker:pw@db.internal:3307/bukarum")
	if err != nil {
		t.Fatalf("mysqlDSNFromURL returned error: %v", err)
	}
	if name != "bukarum" {
		t.Fatalf("expected db name bukarum, got %q", name)
	}
	if !strings.HasPrefix(dsn, "booker:pw@tcp(db.internal:3307)/bukarum?") || !strings.Contains(dsn, "parseTime=True") {
		t.Fatalf("unexpected dsn %q", dsn)
	}

	if _, _, err := mysqlDSNFromURL("mysql://booker:pw@db.internal:3307/"); err == nil {
		t.Fatalf("expected error for missing database name")
	}
}

func TestResolveMySQLDSNFromParts(t *testing.T) {
	t.Setenv("MYSQL_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "s3cret")
	t.Setenv("DB_HOST", "mysql")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_NAME", "")

	dsn, name, err := resolveMySQLDSN()
	if err != nil {
		t.Fatalf("resolveMySQLDSN returned error: %v", err)
	}
	if name != "bukarum" || !strings.HasPrefix(dsn, "app:s3cret@tcp(mysql:3306)/bukarum?") {
		t.Fatalf("unexpected dsn %q (%s)", dsn, name)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SEARCH_TTL", "600")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("REDIS_ADDR", "")

	cfg := LoadConfig()
	if cfg.Port != "9090" || cfg.SessionTTL != 2*time.Hour || cfg.SearchTTL != 10*time.Minute {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.CookieSecure || cfg.RedisAddr != "" {
		t.Fatalf("unexpected flags %+v", cfg)
	}

	t.Setenv("SEARCH_TTL", "soon")
	if got := LoadConfig().SearchTTL; got != 30*time.Minute {
		t.Fatalf("expected default search ttl on bad input, got %s", got)
	}
}
