package config

import (
	"github.com/spf13/viper"

	"github.com/rmsp-tools/registry/internal/db"
)

// LoaderConfig holds snapshot load settings.
type LoaderConfig struct {
	SnapshotDir string
	BatchSize   int
}

// EnrichConfig holds enrichment batch settings.
type EnrichConfig struct {
	InputFile  string
	OutputFile string
	BatchSize  int
}

// Config is the full engine configuration.
type Config struct {
	Database db.Config
	Loader   LoaderConfig
	Enrich   EnrichConfig
}

// Load reads config.yaml from configPath (optional) with environment
// overrides under the RMSP prefix (RMSP_DATABASE_HOST, RMSP_LOADER_DIR...).
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Loader: LoaderConfig{
			SnapshotDir: "./xml",
			BatchSize:   20000,
		},
		Enrich: EnrichConfig{
			InputFile:  "input.csv",
			OutputFile: "output_enriched.csv",
			BatchSize:  10000,
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("RMSP")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("loader.dir")
	v.BindEnv("loader.batch_size")
	v.BindEnv("enrich.input")
	v.BindEnv("enrich.output")
	v.BindEnv("enrich.batch_size")

	// A missing config file is fine; defaults and env vars apply.
	_ = v.ReadInConfig()

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("loader.dir") {
		cfg.Loader.SnapshotDir = v.GetString("loader.dir")
	}
	if v.IsSet("loader.batch_size") {
		cfg.Loader.BatchSize = v.GetInt("loader.batch_size")
	}
	if v.IsSet("enrich.input") {
		cfg.Enrich.InputFile = v.GetString("enrich.input")
	}
	if v.IsSet("enrich.output") {
		cfg.Enrich.OutputFile = v.GetString("enrich.output")
	}
	if v.IsSet("enrich.batch_size") {
		cfg.Enrich.BatchSize = v.GetInt("enrich.batch_size")
	}

	return cfg, nil
}
