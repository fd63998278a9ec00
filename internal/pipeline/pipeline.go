// Package pipeline sequences the report stages and owns the failure
// side-channels: the structured log and the single operator notification.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/render"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/repository"

	"github.com/google/uuid"
)

// FailureSubject is the fixed subject line of the operator alert.
const FailureSubject = "RCO Report Upload Failed"

// Renderer produces the spreadsheet artifact and knows the fixed document
// path the converter writes to.
type Renderer interface {
	RenderSpreadsheet(table domain.ReportTable) (string, error)
	DocumentPath() string
}

// Builder projects fetched registrations into the report table.
type Builder interface {
	Project(registrations []domain.Registration) (domain.ReportTable, error)
}

// Publisher uploads a local artifact under a remote key.
type Publisher interface {
	Upload(ctx context.Context, localPath, remoteKey string) error
}

// Notifier delivers the failure alert.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// Config holds the pipeline's remote keys.
type Config struct {
	SpreadsheetKey string
	DocumentKey    string
}

// DefaultConfig returns the fixed remote keys the report publishes under.
func DefaultConfig() Config {
	return Config{
		SpreadsheetKey: "ReportOnAcceptedRCOs.xlsx",
		DocumentKey:    "ReportOnAcceptedRCOs.pdf",
	}
}

// Result is the terminal outcome of one run.
type Result struct {
	// Stage is StageDone on success, otherwise the stage that failed.
	Stage domain.Stage
	// Rows is the number of registrations in the report.
	Rows int
	// Err is the failure cause, nil on success.
	Err error
	// NotifyErr records a failed alert delivery; the run outcome in Err
	// is unaffected by it.
	NotifyErr error
}

// Failed reports whether the run ended in the Failed terminal state.
func (r Result) Failed() bool {
	return r.Err != nil
}

// ExitCode maps the result to the process exit code: 0 for Done, a
// distinct non-zero code per failing stage, and 7 when the run failed but
// the alert could not be delivered either.
func (r Result) ExitCode() int {
	if !r.Failed() {
		return 0
	}
	if r.NotifyErr != nil {
		return 7
	}
	switch r.Stage {
	case domain.StageFetching:
		return 2
	case domain.StageProjecting:
		return 3
	case domain.StageRendering:
		return 4
	case domain.StageConverting:
		return 5
	case domain.StagePublishing:
		return 6
	default:
		return 1
	}
}

// Pipeline runs the fixed fetch → project → render → convert → publish
// sequence once. All collaborators are injected; the pipeline holds no
// ambient state and is safe to re-run from scratch, overwriting the same
// local paths and remote keys.
type Pipeline struct {
	registrations repository.RegistrationRepository
	builder       Builder
	renderer      Renderer
	converter     render.SpreadsheetConverter
	publisher     Publisher
	notifier      Notifier
	logger        *slog.Logger
	config        Config
}

// New creates a pipeline.
func New(
	registrations repository.RegistrationRepository,
	builder Builder,
	renderer Renderer,
	converter render.SpreadsheetConverter,
	publisher Publisher,
	notifier Notifier,
	logger *slog.Logger,
	config Config,
) *Pipeline {
	return &Pipeline{
		registrations: registrations,
		builder:       builder,
		renderer:      renderer,
		converter:     converter,
		publisher:     publisher,
		notifier:      notifier,
		logger:        logger,
		config:        config,
	}
}

// Run executes the pipeline once. Any stage failure short-circuits the
// remaining stages, is logged with its cause, and triggers exactly one
// notification. Success sends nothing.
func (p *Pipeline) Run(ctx context.Context) Result {
	runID := uuid.New()
	logger := p.logger.With("run_id", runID.String())
	logger.Info("starting accepted RCOs report run")

	logger.Info("stage started", "stage", domain.StageFetching.String())
	registrations, err := p.registrations.FetchAccepted(ctx)
	if err != nil {
		return p.fail(ctx, logger, domain.StageFetching, err)
	}
	logger.Info("fetched registrations", "rows", len(registrations))

	logger.Info("stage started", "stage", domain.StageProjecting.String())
	table, err := p.builder.Project(registrations)
	if err != nil {
		return p.fail(ctx, logger, domain.StageProjecting, err)
	}

	logger.Info("stage started", "stage", domain.StageRendering.String())
	spreadsheetPath, err := p.renderer.RenderSpreadsheet(table)
	if err != nil {
		return p.fail(ctx, logger, domain.StageRendering, err)
	}
	logger.Info("rendered spreadsheet", "path", spreadsheetPath)

	logger.Info("stage started", "stage", domain.StageConverting.String())
	documentPath := p.renderer.DocumentPath()
	if err := p.converter.Convert(ctx, spreadsheetPath, documentPath); err != nil {
		return p.fail(ctx, logger, domain.StageConverting, err)
	}
	logger.Info("converted document", "path", documentPath)

	logger.Info("stage started", "stage", domain.StagePublishing.String())
	if err := p.publisher.Upload(ctx, spreadsheetPath, p.config.SpreadsheetKey); err != nil {
		return p.fail(ctx, logger, domain.StagePublishing, err)
	}
	if err := p.publisher.Upload(ctx, documentPath, p.config.DocumentKey); err != nil {
		return p.fail(ctx, logger, domain.StagePublishing, err)
	}

	logger.Info("report run complete", "rows", table.RowCount())
	return Result{Stage: domain.StageDone, Rows: table.RowCount()}
}

// fail records the terminal failure and flushes the accumulated
// notification exactly once. A failed flush never masks the original
// cause; it rides along in Result.NotifyErr.
func (p *Pipeline) fail(ctx context.Context, logger *slog.Logger, stage domain.Stage, cause error) Result {
	logger.Error("stage failed", "stage", stage.String(), "error", cause.Error())

	result := Result{Stage: stage, Err: cause}
	body := buildNotification(stage, cause)
	if err := p.notifier.Send(ctx, FailureSubject, body); err != nil {
		logger.Error("failed to deliver failure notification", "error", err.Error())
		result.NotifyErr = err
	} else {
		logger.Info("failure notification sent", "stage", stage.String())
	}
	return result
}

// buildNotification composes the single outgoing alert body: the fixed
// opening line the report has always used plus one stage-specific
// fragment and the underlying cause.
func buildNotification(stage domain.Stage, cause error) string {
	var b strings.Builder
	b.WriteString("The RCO Report upload failed.\n\n")
	b.WriteString(stageFragment(stage, cause))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Stage: %s\nError: %v\n", stage, cause)
	return b.String()
}

func stageFragment(stage domain.Stage, cause error) string {
	switch stage {
	case domain.StageFetching:
		if errors.Is(cause, domain.ErrConnection) {
			return "Could not connect to the registration database."
		}
		return "The registration query failed."
	case domain.StageProjecting:
		return "The report projection failed."
	case domain.StageRendering:
		return "The report spreadsheet could not be written."
	case domain.StageConverting:
		return "The spreadsheet could not be converted to a document."
	case domain.StagePublishing:
		switch {
		case errors.Is(cause, domain.ErrFileNotFound):
			return "The file was not found."
		case errors.Is(cause, domain.ErrCredentials):
			return "Credentials not available."
		default:
			return "Upload failed."
		}
	default:
		return "The report pipeline failed."
	}
}
