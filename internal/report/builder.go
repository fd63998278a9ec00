// Package report projects fetched registration rows into the fixed
// presentation layout of the accepted-RCOs report.
package report

import (
	"fmt"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"
)

// Builder maps registrations into the renamed, reordered report table.
type Builder struct{}

// NewBuilder creates a new report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Project converts registrations into a ReportTable. It is a pure
// rename/reorder: one output row per input row, values untouched, no
// filtering or sorting. It fails with domain.ErrSchemaMismatch if the
// column mapping does not cover an expected source field.
func (b *Builder) Project(registrations []domain.Registration) (domain.ReportTable, error) {
	columns := make([]string, 0, len(domain.SourceColumns))
	for _, source := range domain.SourceColumns {
		label, ok := domain.DisplayLabels[source]
		if !ok {
			return domain.ReportTable{}, fmt.Errorf("%w: no display label for %s", domain.ErrSchemaMismatch, source)
		}
		columns = append(columns, label)
	}

	rows := make([][]any, 0, len(registrations))
	for i, registration := range registrations {
		row := make([]any, 0, len(domain.SourceColumns))
		for _, source := range domain.SourceColumns {
			value, ok := registration.Field(source)
			if !ok {
				return domain.ReportTable{}, fmt.Errorf("%w: row %d has no field %s", domain.ErrSchemaMismatch, i, source)
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}

	return domain.ReportTable{Columns: columns, Rows: rows}, nil
}
