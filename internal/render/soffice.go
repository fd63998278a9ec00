package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"
)

// ConverterConfig holds settings for the headless document converter.
type ConverterConfig struct {
	// Command is the converter binary, soffice by default.
	Command string
	// Timeout bounds a single conversion. The office process is killed
	// when it elapses.
	Timeout time.Duration
}

// DefaultConverterConfig returns the stock LibreOffice settings.
func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		Command: "soffice",
		Timeout: 2 * time.Minute,
	}
}

// sofficeConverter converts spreadsheets to PDF by driving a headless
// LibreOffice process.
type sofficeConverter struct {
	config ConverterConfig
}

// NewSofficeConverter creates a converter backed by LibreOffice headless.
func NewSofficeConverter(config ConverterConfig) SpreadsheetConverter {
	if config.Command == "" {
		config.Command = "soffice"
	}
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Minute
	}
	return &sofficeConverter{config: config}
}

// Convert runs the converter against spreadsheetPath and moves the result
// to documentPath. The process is scoped to the call: it is reaped on
// timeout and on every failure path, and partial output is removed before
// the error propagates. Failures wrap domain.ErrConversion.
func (c *sofficeConverter) Convert(ctx context.Context, spreadsheetPath, documentPath string) error {
	if _, err := os.Stat(spreadsheetPath); err != nil {
		return fmt.Errorf("%w: spreadsheet missing: %v", domain.ErrConversion, err)
	}

	outDir := filepath.Dir(documentPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to ensure output directory: %v", domain.ErrConversion, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.config.Command,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, spreadsheetPath)
	output, err := cmd.CombinedOutput()

	// soffice names its output after the input file; locate it before
	// deciding the run's fate so failures can also scrub partial output.
	base := strings.TrimSuffix(filepath.Base(spreadsheetPath), filepath.Ext(spreadsheetPath))
	produced := filepath.Join(outDir, base+".pdf")

	if err != nil {
		_ = os.Remove(produced)
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: conversion timed out after %s", domain.ErrConversion, c.config.Timeout)
		}
		return fmt.Errorf("%w: %v: %s", domain.ErrConversion, err, strings.TrimSpace(string(output)))
	}

	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("%w: converter produced no output: %v", domain.ErrConversion, err)
	}
	if produced != documentPath {
		if err := os.Rename(produced, documentPath); err != nil {
			_ = os.Remove(produced)
			return fmt.Errorf("%w: failed to promote document: %v", domain.ErrConversion, err)
		}
	}
	return nil
}
