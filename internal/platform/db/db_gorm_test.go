package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetModel struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

// TestConfig_Driver はDATABASE_URLの有無でドライバが切り替わることを検証します。
func TestConfig_Driver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"postgres url", Config{DatabaseURL: "postgres://u:p@localhost:5432/advisor"}, "postgres"},
		{"sqlite fallback", Config{SQLitePath: "advisor.db"}, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.Driver())
			assert.Equal(t, tt.want, Dialector(tt.cfg).Name())
		})
	}
}

// TestLoadConfig_Defaults は環境変数未設定時の既定値を検証します。
func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("RUN_MIGRATIONS", "")

	cfg := LoadConfig()
	assert.Equal(t, "advisor.db", cfg.SQLitePath)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 60*time.Second, cfg.ConnectTimeout)
}

// TestOpenDB_SQLiteMigrates はインメモリSQLiteへの接続とマイグレーションを検証します。
func TestOpenDB_SQLiteMigrates(t *testing.T) {
	t.Parallel()

	cfg := Config{SQLitePath: ":memory:", RunMigrations: true, ConnectTimeout: time.Second}
	db, err := OpenDB(context.Background(), cfg, &widgetModel{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&widgetModel{}))
	assert.NoError(t, Ping(db)(context.Background()))
}

// TestRedact は接続文字列のパスワードがマスクされることを検証します。
func TestRedact(t *testing.T) {
	t.Parallel()

	got := redact(Config{DatabaseURL: "postgres://advisor:s3cret@db:5432/advisor"})
	assert.Equal(t, "postgres://***@db:5432/advisor", got)
	assert.NotContains(t, got, "s3cret")
}
