package repository

import (
	"context"
	"fmt"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/db"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
)

// acceptedQuery is the one query this job runs. The status predicate is
// parameterized; the ORDER BY makes report output deterministic, which the
// bare table scan it replaces was not.
const acceptedQuery = `
	SELECT organization_name, organization_address, application_date,
	       org_type, preffered_contact_method, primary_address, primary_email
	FROM rco_registration_information
	WHERE status = $1
	ORDER BY application_date, organization_name`

// registrationRepository implements RegistrationRepository against Postgres
type registrationRepository struct {
	config db.Config
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(config db.Config) RegistrationRepository {
	return &registrationRepository{config: config}
}

// FetchAccepted opens a connection scoped to the call, runs the accepted
// registrations query, and releases the connection on every exit path.
// Connection failures wrap domain.ErrConnection; query and scan failures
// wrap domain.ErrQuery.
func (r *registrationRepository) FetchAccepted(ctx context.Context) ([]domain.Registration, error) {
	conn, err := db.Connect(ctx, r.config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	rows, err := conn.Query(ctx, acceptedQuery, domain.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuery, err)
	}
	defer rows.Close()

	var registrations []domain.Registration
	for rows.Next() {
		var (
			name    pgtype.Text
			address pgtype.Text
			date    pgtype.Date
			orgType pgtype.Text
			contact pgtype.Text
			cAddr   pgtype.Text
			email   pgtype.Text
		)
		if err := rows.Scan(&name, &address, &date, &orgType, &contact, &cAddr, &email); err != nil {
			return nil, fmt.Errorf("%w: failed to scan row: %v", domain.ErrQuery, err)
		}
		registrations = append(registrations, domain.Registration{
			OrganizationName:       name.String,
			OrganizationAddress:    address.String,
			ApplicationDate:        date.Time,
			OrgType:                orgType.String,
			PreferredContactMethod: contact.String,
			PrimaryAddress:         cAddr.String,
			PrimaryEmail:           email.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuery, err)
	}

	return registrations, nil
}
