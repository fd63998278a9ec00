package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/db"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/logging"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/notify"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/pipeline"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/publish"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/render"

	"github.com/spf13/viper"
)

// Config aggregates every setting the job reads, loaded once at startup.
// Secrets (database password, storage keys, relay credential) only ever
// arrive through the environment or the optional config file; nothing is
// read ambiently after startup.
type Config struct {
	Database  db.Config
	S3        publish.Options
	SMTP      notify.Config
	Render    render.Config
	Converter render.ConverterConfig
	Pipeline  pipeline.Config
	Log       logging.Config
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Database:  db.DefaultConfig(),
		S3:        publish.DefaultOptions(),
		SMTP:      notify.Config{Port: 25},
		Render:    render.DefaultConfig(),
		Converter: render.DefaultConverterConfig(),
		Pipeline:  pipeline.DefaultConfig(),
		Log:       logging.DefaultConfig(),
	}
}

// Load reads configuration from an optional config.yaml in configPath,
// with environment overrides under the RCO prefix (RCO_DATABASE_HOST,
// RCO_S3_SECRET_KEY, ...).
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("RCO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		"database.host", "database.port", "database.user", "database.password",
		"database.dbname", "database.sslmode", "database.connect_timeout",
		"s3.bucket", "s3.region", "s3.endpoint", "s3.access_key", "s3.secret_key",
		"s3.acl", "s3.http_proxy", "s3.https_proxy", "s3.connect_timeout",
		"s3.read_timeout", "s3.max_retries",
		"smtp.host", "smtp.port", "smtp.sender", "smtp.password", "smtp.recipients",
		"render.output_dir", "render.spreadsheet_file", "render.document_file",
		"converter.command", "converter.timeout",
		"pipeline.spreadsheet_key", "pipeline.document_key",
		"log.file", "log.max_size_mb", "log.max_backups",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	// Override defaults if values exist
	setString(v, "database.host", &cfg.Database.Host)
	setInt(v, "database.port", &cfg.Database.Port)
	setString(v, "database.user", &cfg.Database.User)
	setString(v, "database.password", &cfg.Database.Password)
	setString(v, "database.dbname", &cfg.Database.DBName)
	setString(v, "database.sslmode", &cfg.Database.SSLMode)
	setDuration(v, "database.connect_timeout", &cfg.Database.ConnectTimeout)

	setString(v, "s3.bucket", &cfg.S3.Bucket)
	setString(v, "s3.region", &cfg.S3.Region)
	setString(v, "s3.endpoint", &cfg.S3.Endpoint)
	setString(v, "s3.access_key", &cfg.S3.AccessKey)
	setString(v, "s3.secret_key", &cfg.S3.SecretKey)
	setString(v, "s3.acl", &cfg.S3.ACL)
	setString(v, "s3.http_proxy", &cfg.S3.HTTPProxy)
	setString(v, "s3.https_proxy", &cfg.S3.HTTPSProxy)
	setDuration(v, "s3.connect_timeout", &cfg.S3.ConnectTimeout)
	setDuration(v, "s3.read_timeout", &cfg.S3.ReadTimeout)
	setInt(v, "s3.max_retries", &cfg.S3.MaxRetries)

	setString(v, "smtp.host", &cfg.SMTP.Host)
	setInt(v, "smtp.port", &cfg.SMTP.Port)
	setString(v, "smtp.sender", &cfg.SMTP.Sender)
	setString(v, "smtp.password", &cfg.SMTP.Password)
	if v.IsSet("smtp.recipients") {
		cfg.SMTP.Recipients = splitRecipients(v.GetStringSlice("smtp.recipients"))
	}

	setString(v, "render.output_dir", &cfg.Render.OutputDir)
	setString(v, "render.spreadsheet_file", &cfg.Render.SpreadsheetFile)
	setString(v, "render.document_file", &cfg.Render.DocumentFile)

	setString(v, "converter.command", &cfg.Converter.Command)
	setDuration(v, "converter.timeout", &cfg.Converter.Timeout)

	setString(v, "pipeline.spreadsheet_key", &cfg.Pipeline.SpreadsheetKey)
	setString(v, "pipeline.document_key", &cfg.Pipeline.DocumentKey)

	setString(v, "log.file", &cfg.Log.File)
	setInt(v, "log.max_size_mb", &cfg.Log.MaxSizeMB)
	setInt(v, "log.max_backups", &cfg.Log.MaxBackups)

	return cfg, nil
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setDuration(v *viper.Viper, key string, dst *time.Duration) {
	if v.IsSet(key) {
		*dst = v.GetDuration(key)
	}
}

// splitRecipients tolerates a single comma-separated value, which is how
// the recipient list arrives when set through one environment variable.
func splitRecipients(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
