package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Driver names accepted in Config.DBDriver.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds application configuration.
type Config struct {
	// DBDriver selects the record source driver: "sqlite" or "mysql".
	DBDriver string `json:"db_driver"`

	// DBDSN is the data source name. For sqlite an empty value means
	// <base>/contacts.db; for mysql it must be a full DSN.
	DBDSN string `json:"db_dsn,omitempty"`

	// OutputDir is where run directories (reports, exports) are created.
	// Empty means <base>/analysis.
	OutputDir string `json:"output_dir,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default. Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBDriver: DriverSQLite,
	}
}

// Load loads configuration from baseDir/config.json, then applies
// environment overrides. Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of
// ~/.contactlens.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DBDriver = overlay.DBDriver
	if result.DBDriver == "" {
		result.DBDriver = base.DBDriver
	}

	result.DBDSN = overlay.DBDSN
	if result.DBDSN == "" {
		result.DBDSN = base.DBDSN
	}

	result.OutputDir = overlay.OutputDir
	if result.OutputDir == "" {
		result.OutputDir = base.OutputDir
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// ApplyEnv overlays environment variables onto cfg. A .env file in the
// working directory is loaded first (best-effort, missing file is fine).
//
// Recognized variables: DB_DRIVER, DB_DSN, OUTPUT_DIR, and the
// DB_HOST/DB_USER/DB_PASSWORD/DB_NAME quartet, which builds a MySQL DSN
// when DB_DSN is not given explicitly.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	// Legacy quartet: presence of DB_HOST (or DB_NAME) implies MySQL.
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	if cfg.DBDSN == "" && (host != "" || name != "") {
		if host == "" {
			host = "localhost"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "root"
		}
		if name == "" {
			name = "contactbook"
		}
		cfg.DBDriver = DriverMySQL
		cfg.DBDSN = MySQLDSN(host, user, os.Getenv("DB_PASSWORD"), name)
	}
}

// MySQLDSN builds a go-sql-driver DSN from host/user/password/database.
func MySQLDSN(host, user, password, database string) string {
	if !strings.Contains(host, ":") {
		host += ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4", user, password, host, database)
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
