package repository

import (
	"context"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/domain"
)

// RegistrationRepository defines the interface for registration lookups
type RegistrationRepository interface {
	// FetchAccepted returns every registration whose status is Accepted,
	// ordered by application date then organization name.
	FetchAccepted(ctx context.Context) ([]domain.Registration, error)
}
