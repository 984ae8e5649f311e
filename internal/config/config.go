package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"banks-etl/internal/store"
	"banks-etl/lib/configutil"
	"banks-etl/lib/telemetry"

	"github.com/joho/godotenv"
)

const FileName = "config.json5"

type Config struct {
	SourceURL       string   `json:"source_url"`
	RateSourceURL   string   `json:"rate_source_url"`
	CSVPath         string   `json:"csv_path"`
	XLSXPath        string   `json:"xlsx_path"`
	DBPath          string   `json:"db_path"`
	DBUrl           string   `json:"db_url"`
	DBAuthToken     string   `json:"db_auth_token"`
	TableName       string   `json:"table_name"`
	LogPath         string   `json:"log_path"`
	Selector        string   `json:"selector"`
	RowLimit        int      `json:"row_limit"`
	StrictRows      bool     `json:"strict_rows"`
	ExpectedColumns []string `json:"expected_columns"`
	// statements run and printed after loading, {table} is replaced with
	// TableName
	Queries         []string `json:"queries"`

	BypassCloudflare   bool   `json:"bypass_cloudflare"`
	HttpDumpDir        string `json:"http_dump_dir"`
	HttpTimeoutSeconds int    `json:"http_timeout_seconds"`

	LogLevel  string           `json:"log_level"`
	LogFormat string           `json:"log_format"`
	Telemetry telemetry.Config `json:"telemetry"`
}

func Default() Config {
	return Config{
		SourceURL:       "https://web.archive.org/web/20230908091635/https://en.wikipedia.org/wiki/List_of_largest_banks",
		RateSourceURL:   "https://cf-courses-data.s3.us.cloud-object-storage.appdomain.cloud/IBMSkillsNetwork-PY0221EN-Coursera/labs/v2/exchange_rate.csv",
		CSVPath:         "./Largest_banks_data.csv",
		DBPath:          "Banks.db",
		TableName:       "Largest_banks",
		LogPath:         "code_log.txt",
		Selector:        "table.wikitable",
		RowLimit:        10,
		ExpectedColumns: []string{"Name", "MC_USD_Billion"},
		Queries: []string{
			"SELECT * FROM {table}",
			"SELECT AVG(MC_GBP_Billion) FROM {table}",
			"SELECT * from {table} LIMIT 5",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func (c Config) Store() store.Config {
	return store.Config{
		File:      c.DBPath,
		Url:       c.DBUrl,
		AuthToken: c.DBAuthToken,
	}
}

func (c Config) Validate() error {
	var errs []error
	required := map[string]string{
		"source_url":      c.SourceURL,
		"rate_source_url": c.RateSourceURL,
		"csv_path":        c.CSVPath,
		"table_name":      c.TableName,
		"log_path":        c.LogPath,
	}
	for name, v := range required {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	if c.DBPath == "" && c.DBUrl == "" {
		errs = append(errs, fmt.Errorf("one of db_path or db_url is required"))
	}
	if c.RowLimit < 0 {
		errs = append(errs, fmt.Errorf("row_limit must not be negative"))
	}
	return errors.Join(errs...)
}

// envOverrides maps environment variables to the fields they replace.
func envOverrides(c *Config) map[string]*string {
	return map[string]*string{
		"BANKS_ETL_SOURCE_URL":      &c.SourceURL,
		"BANKS_ETL_RATE_SOURCE_URL": &c.RateSourceURL,
		"BANKS_ETL_CSV_PATH":        &c.CSVPath,
		"BANKS_ETL_DB_PATH":         &c.DBPath,
		"BANKS_ETL_DB_URL":          &c.DBUrl,
		"BANKS_ETL_DB_AUTH_TOKEN":   &c.DBAuthToken,
		"BANKS_ETL_TABLE_NAME":      &c.TableName,
		"BANKS_ETL_LOG_PATH":        &c.LogPath,
		"BANKS_ETL_LOG_LEVEL":       &c.LogLevel,
	}
}

func applyEnv(c *Config) error {
	for name, field := range envOverrides(c) {
		v, ok := os.LookupEnv(name)
		if ok {
			*field = v
		}
	}
	v, ok := os.LookupEnv("BANKS_ETL_ROW_LIMIT")
	if ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BANKS_ETL_ROW_LIMIT: %w", err)
		}
		c.RowLimit = limit
	}
	return nil
}

// Load builds the configuration from, in increasing priority: defaults,
// config.json5 found by walking up from the working directory (or the file
// at path when it is not empty), its .local override, and BANKS_ETL_*
// environment variables. A .env file in the working directory is loaded
// into the environment first.
func Load(path string) (Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		cfg, err = configutil.ReadConfig[Config](path)
	} else {
		cfg, _, err = configutil.ReadRecursively[Config](FileName)
	}
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	if err != nil && path != "" {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	cfg, err = configutil.WithDefaults(cfg, Default())
	if err != nil {
		return Config{}, err
	}
	err = applyEnv(&cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}
