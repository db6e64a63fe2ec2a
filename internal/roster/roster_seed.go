package roster

import (
	"context"

	"go.uber.org/zap"
)

// DefaultIdentities is the demo roster loaded into an empty store.
var DefaultIdentities = []Identity{
	{ID: "101", Name: "Alice Johnson", Department: "HR", Role: "HR Manager"},
	{ID: "102", Name: "Bob Smith", Department: "IT", Role: "Software Engineer"},
	{ID: "103", Name: "Carol Lee", Department: "Finance", Role: "Accountant"},
	{ID: "104", Name: "David Brown", Department: "Sales", Role: "Sales Executive"},
	{ID: "105", Name: "Emma Davis", Department: "IT", Role: "DevOps Engineer"},
	{ID: "106", Name: "Frank Wilson", Department: "Finance", Role: "Financial Analyst"},
	{ID: "107", Name: "Grace Miller", Department: "HR", Role: "Recruiter"},
	{ID: "108", Name: "Henry Clark", Department: "IT", Role: "Backend Engineer"},
	{ID: "109", Name: "Irene Lewis", Department: "Sales", Role: "Sales Associate"},
	{ID: "110", Name: "Jack Hall", Department: "IT", Role: "Frontend Engineer"},
	{ID: "111", Name: "Kate Young", Department: "HR", Role: "HR Associate"},
	{ID: "112", Name: "Liam Walker", Department: "IT", Role: "QA Engineer"},
	{ID: "113", Name: "Mia Allen", Department: "Finance", Role: "Auditor"},
	{ID: "114", Name: "Noah Scott", Department: "Sales", Role: "Sales Manager"},
	{ID: "115", Name: "Olivia King", Department: "IT", Role: "Data Scientist"},
}

// Seed inserts identities only when the roster is empty, so running it on
// every start is a no-op once data exists. It reports whether rows were added.
func Seed(ctx context.Context, repo Repository, identities []Identity, logger ...*zap.Logger) (bool, error) {
	l := zap.L().Named("roster.seed")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.seed")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		l.Debug("roster already seeded", zap.Int64("count", count))
		return false, nil
	}

	if err := repo.CreateBatch(ctx, identities); err != nil {
		l.Error("roster seed failed", zap.Error(err))
		return false, err
	}
	l.Info("roster seeded", zap.Int("count", len(identities)))
	return true, nil
}
