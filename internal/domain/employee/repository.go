package employee

import "context"

type Repository interface {
	// GetByID returns the employee or ErrEmployeeNotFound.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByCompany returns the company's employees ordered by last name.
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns every company that has at least one employee.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
