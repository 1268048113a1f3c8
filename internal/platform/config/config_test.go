package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	chdir(t, t.TempDir()) // sin .env

	cfg, err := Load()
	req.NoError(err)
	req.Equal("8080", cfg.Port)
	req.Equal(":8080", cfg.Addr())
	req.Equal("cows", cfg.StoreKey)
	req.Equal(DriverMemory, cfg.StorageDriver)
	req.Equal(10*time.Second, cfg.ShutdownTimeout)
	req.Equal("us-east-1", cfg.S3Region)
}

func TestLoad_FromEnvironment(t *testing.T) {
	req := require.New(t)
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/ganado.db")
	t.Setenv("STORE_KEY", "rodeo")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	req.NoError(err)
	req.Equal(":9090", cfg.Addr())
	req.Equal(DriverSQLite, cfg.StorageDriver)
	req.Equal("/tmp/ganado.db", cfg.SQLitePath)
	req.Equal("rodeo", cfg.StoreKey)
	req.Equal("json", cfg.LogFormat)
}

func TestValidate_DriverRequirements(t *testing.T) {
	base := Config{StoreKey: "cows"}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"memory ok", func(c *Config) { c.StorageDriver = DriverMemory }, false},
		{"postgres without dsn", func(c *Config) { c.StorageDriver = DriverPostgres }, true},
		{"postgres with dsn", func(c *Config) { c.StorageDriver = DriverPostgres; c.DBDSN = "postgres://x" }, false},
		{"s3 without bucket", func(c *Config) { c.StorageDriver = DriverS3 }, true},
		{"badger with path", func(c *Config) { c.StorageDriver = DriverBadger; c.BadgerPath = "data/b" }, false},
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }, true},
		{"empty key", func(c *Config) { c.StorageDriver = DriverMemory; c.StoreKey = " " }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
