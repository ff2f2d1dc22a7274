package policy

import "context"

// RuleRepository resolves the company's current attendance policy.
type RuleRepository interface {
	// CurrentRuleFor returns the newest rule for the company with its
	// geofence joined, or (nil, nil) when the company has none.
	CurrentRuleFor(ctx context.Context, companyID string) (*Rule, error)
}
