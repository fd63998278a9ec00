package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.S3.Bucket != "dpd-rco-docs-prod" {
		t.Fatalf("unexpected default bucket: %s", cfg.S3.Bucket)
	}
	if cfg.S3.ACL != "public-read" {
		t.Fatalf("unexpected default ACL: %s", cfg.S3.ACL)
	}
	if cfg.S3.MaxRetries != 2 {
		t.Fatalf("unexpected default retry count: %d", cfg.S3.MaxRetries)
	}
	if cfg.Render.SpreadsheetFile != "Accepted_RCOs_Report.xlsx" {
		t.Fatalf("unexpected default spreadsheet name: %s", cfg.Render.SpreadsheetFile)
	}
	if cfg.Pipeline.SpreadsheetKey != "ReportOnAcceptedRCOs.xlsx" {
		t.Fatalf("unexpected default remote key: %s", cfg.Pipeline.SpreadsheetKey)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
database:
  host: sql.phila.gov
  port: 5433
  dbname: rco_registration
s3:
  bucket: dpd-rco-docs-test
  https_proxy: http://proxy.phila.gov:8080
smtp:
  host: relay.phila.gov
  sender: apps@phila.gov
  recipients:
    - nick@phila.gov
    - dan@phila.gov
converter:
  timeout: 90s
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Database.Host != "sql.phila.gov" || cfg.Database.Port != 5433 {
		t.Fatalf("database settings not applied: %+v", cfg.Database)
	}
	if cfg.S3.Bucket != "dpd-rco-docs-test" {
		t.Fatalf("bucket override not applied: %s", cfg.S3.Bucket)
	}
	if cfg.S3.HTTPSProxy != "http://proxy.phila.gov:8080" {
		t.Fatalf("proxy override not applied: %s", cfg.S3.HTTPSProxy)
	}
	if len(cfg.SMTP.Recipients) != 2 || cfg.SMTP.Recipients[0] != "nick@phila.gov" {
		t.Fatalf("recipients not applied: %v", cfg.SMTP.Recipients)
	}
	if cfg.Converter.Timeout != 90*time.Second {
		t.Fatalf("converter timeout not applied: %v", cfg.Converter.Timeout)
	}
	// Untouched keys keep their defaults.
	if cfg.S3.ACL != "public-read" {
		t.Fatalf("default ACL lost: %s", cfg.S3.ACL)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("RCO_DATABASE_HOST", "env-db.phila.gov")
	t.Setenv("RCO_S3_SECRET_KEY", "env-secret")
	t.Setenv("RCO_SMTP_RECIPIENTS", "a@phila.gov, b@phila.gov")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Database.Host != "env-db.phila.gov" {
		t.Fatalf("env database host not applied: %s", cfg.Database.Host)
	}
	if cfg.S3.SecretKey != "env-secret" {
		t.Fatalf("env secret key not applied")
	}
	if len(cfg.SMTP.Recipients) != 2 || cfg.SMTP.Recipients[1] != "b@phila.gov" {
		t.Fatalf("comma-separated recipients not split: %v", cfg.SMTP.Recipients)
	}
}
