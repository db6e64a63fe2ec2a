package infra

import (
	_ "embed"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

// DefaultPolicies grant the HR role read and export on the attendance
// report. ADMIN inherits everything HR has.
var DefaultPolicies = [][]string{
	{"HR", "attendance", "read"},
	{"HR", "attendance", "export"},
}

var DefaultGroupingPolicies = [][]string{
	{"ADMIN", "HR"},
}

// NewEnforcer builds an in-memory enforcer from the embedded model and the
// given policies.
func NewEnforcer(policies, groupings [][]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, err
		}
	}
	if len(groupings) > 0 {
		if _, err := e.AddGroupingPolicies(groupings); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func NewDefaultEnforcer() (*casbin.Enforcer, error) {
	return NewEnforcer(DefaultPolicies, DefaultGroupingPolicies)
}
