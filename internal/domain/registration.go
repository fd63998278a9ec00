package domain

import "time"

// Source column names as they exist in the registration database. The
// "preffered" spelling is the database's own and has to be preserved.
const (
	ColOrganizationName       = "organization_name"
	ColOrganizationAddress    = "organization_address"
	ColApplicationDate        = "application_date"
	ColOrgType                = "org_type"
	ColPreferredContactMethod = "preffered_contact_method"
	ColPrimaryAddress         = "primary_address"
	ColPrimaryEmail           = "primary_email"
)

// SourceColumns lists the seven source fields in their fixed report order.
var SourceColumns = []string{
	ColOrganizationName,
	ColOrganizationAddress,
	ColApplicationDate,
	ColOrgType,
	ColPreferredContactMethod,
	ColPrimaryAddress,
	ColPrimaryEmail,
}

// DisplayLabels maps each source column to the label shown in the report.
var DisplayLabels = map[string]string{
	ColOrganizationName:       "RCO",
	ColOrganizationAddress:    "RCO Address",
	ColApplicationDate:        "Application Date",
	ColOrgType:                "Organization Type",
	ColPreferredContactMethod: "Preferred Contact Method",
	ColPrimaryAddress:         "Contact Address",
	ColPrimaryEmail:           "Email",
}

// StatusAccepted is the registration status included in the report.
const StatusAccepted = "Accepted"

// Registration is one accepted community-organization record as fetched
// from the database. Fields are display-only and never mutated.
type Registration struct {
	OrganizationName       string
	OrganizationAddress    string
	ApplicationDate        time.Time
	OrgType                string
	PreferredContactMethod string
	PrimaryAddress         string
	PrimaryEmail           string
}

// Field returns the value for a source column name.
func (r Registration) Field(column string) (any, bool) {
	switch column {
	case ColOrganizationName:
		return r.OrganizationName, true
	case ColOrganizationAddress:
		return r.OrganizationAddress, true
	case ColApplicationDate:
		return r.ApplicationDate, true
	case ColOrgType:
		return r.OrgType, true
	case ColPreferredContactMethod:
		return r.PreferredContactMethod, true
	case ColPrimaryAddress:
		return r.PrimaryAddress, true
	case ColPrimaryEmail:
		return r.PrimaryEmail, true
	default:
		return nil, false
	}
}

// ReportTable is the projected report: display labels in fixed column
// order plus one row of values per registration. Row order is whatever
// the repository returned.
type ReportTable struct {
	Columns []string
	Rows    [][]any
}

// RowCount returns the number of data rows in the table.
func (t ReportTable) RowCount() int {
	return len(t.Rows)
}
