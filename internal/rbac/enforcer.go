// Package rbac maps the three fixed roles onto resource/action
// permissions. Roles and policies are static, so the casbin model and
// policy set are compiled in rather than loaded from storage.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"go-readiness/internal/user"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{user.RoleWorker, "checkin", "read"},
	{user.RoleWorker, "checkin", "create"},
	{user.RoleWorker, "leave", "read"},
	{user.RoleWorker, "leave", "create"},
	{user.RoleWorker, "absence", "read"},
	{user.RoleWorker, "absence", "justify"},
	{user.RoleWorker, "absence", "detect"},
	{user.RoleWorker, "summary", "read"},
	{user.RoleWorker, "holiday", "read"},
	{user.RoleWorker, "grading", "read_self"},

	{user.RoleTeamLead, "checkin", "audit"},
	{user.RoleTeamLead, "leave", "review"},
	{user.RoleTeamLead, "absence", "review"},
	{user.RoleTeamLead, "absence", "detect_team"},
	{user.RoleTeamLead, "summary", "recalculate"},
	{user.RoleTeamLead, "grading", "read_team"},

	{user.RoleAdmin, "holiday", "create"},
	{user.RoleAdmin, "holiday", "delete"},
}

// Role inheritance: every lead can do what a worker can, every admin
// what a lead can.
var groupings = [][]string{
	{user.RoleTeamLead, user.RoleWorker},
	{user.RoleAdmin, user.RoleTeamLead},
}

type Enforcer struct {
	enforcer *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	return e.enforcer.Enforce(role, resource, action)
}
