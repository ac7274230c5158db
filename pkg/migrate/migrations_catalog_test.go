package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/barbarashop/storefront-backend/pkg/migrate"
)

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestProductsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_products.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT",
		"CHECK (price_cents >= 0)",
		"CHECK (rating >= 0 AND rating <= 5)",
		"DROP TABLE IF EXISTS products",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUsersMigrationEnforcesUniqueEmail(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)",
		"DROP TABLE IF EXISTS users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
