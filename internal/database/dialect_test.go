package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM profiles WHERE id = ?",
			expected: "SELECT * FROM profiles WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM profiles WHERE id = ?",
			expected: "SELECT * FROM profiles WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO profiles (id, name) VALUES (?, ?)",
			expected: "INSERT INTO profiles (id, name) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE profiles SET name = ?, color_theme = ? WHERE id = ?",
			expected: "UPDATE profiles SET name = ?, color_theme = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		name    string
		dbType  string
		driver  string
		wantErr bool
	}{
		{"default", "", "sqlite3", false},
		{"sqlite", "SQLite", "sqlite3", false},
		{"postgresql", "postgresql", "postgres", false},
		{"mysql", "mysql", "mysql", false},
		{"unknown", "oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, err := DialectFor(tt.dbType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DialectFor(%q) error = %v, wantErr %v", tt.dbType, err, tt.wantErr)
			}
			if err == nil && dialect.DriverName() != tt.driver {
				t.Errorf("DialectFor(%q).DriverName() = %v, want %v", tt.dbType, dialect.DriverName(), tt.driver)
			}
		})
	}
}

func TestUpsertProfileQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		contains string
	}{
		{"SQLite", NewSQLiteDialect(), "ON CONFLICT(id)"},
		{"PostgreSQL", NewPostgresDialect(), "ON CONFLICT (id)"},
		{"MySQL", NewMySQLDialect(), "ON DUPLICATE KEY UPDATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.dialect.UpsertProfileQuery()
			if !strings.Contains(query, tt.contains) {
				t.Errorf("UpsertProfileQuery() = %q, want it to contain %q", query, tt.contains)
			}
			if got := strings.Count(query, "?"); got != 5 {
				t.Errorf("UpsertProfileQuery() has %d placeholders, want 5", got)
			}
		})
	}
}

