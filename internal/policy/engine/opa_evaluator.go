package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const allowQuery = "data.portal.access.allow"

// DefaultRegoPolicy admits usernames found in input.allowed_users, compared case-insensitively.
const DefaultRegoPolicy = `package portal.access

default allow := false

allow if {
	some user in input.allowed_users
	lower(user) == lower(input.username)
}
`

// OPAEvaluator evaluates the portal access policy using OPA Rego.
type OPAEvaluator struct {
	allowedUsers []string
	compiler     *ast.Compiler
}

// NewOPAEvaluator compiles the access policy once. rules replaces the default policy when non-empty;
// it must define data.portal.access.allow.
func NewOPAEvaluator(allowedUsers []string, rules string) (*OPAEvaluator, error) {
	if strings.TrimSpace(rules) == "" {
		rules = DefaultRegoPolicy
	}
	compiler, err := ast.CompileModules(map[string]string{"access.rego": rules})
	if err != nil {
		return nil, fmt.Errorf("compile access policy: %w", err)
	}
	users := make([]string, 0, len(allowedUsers))
	for _, u := range allowedUsers {
		if u = strings.TrimSpace(u); u != "" {
			users = append(users, u)
		}
	}
	return &OPAEvaluator{allowedUsers: users, compiler: compiler}, nil
}

// HealthCheck verifies that the in-process OPA Rego engine can compile and evaluate the default policy.
// Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	compiler, err := ast.CompileModules(map[string]string{"policy_0.rego": DefaultRegoPolicy})
	if err != nil {
		return fmt.Errorf("compile default policy: %w", err)
	}
	q := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(compiler),
		rego.Input(map[string]interface{}{
			"username":      "",
			"allowed_users": []interface{}{},
		}),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return fmt.Errorf("eval default policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return fmt.Errorf("policy query returned no result")
	}
	return nil
}

// EvaluateAccess evaluates the compiled policy for username.
func (e *OPAEvaluator) EvaluateAccess(ctx context.Context, username string) (Decision, error) {
	allowed := make([]interface{}, 0, len(e.allowedUsers))
	for _, u := range e.allowedUsers {
		allowed = append(allowed, u)
	}
	q := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(e.compiler),
		rego.Input(map[string]interface{}{
			"username":      strings.TrimSpace(username),
			"allowed_users": allowed,
		}),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("eval access policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return Decision{}, nil
	}
	v, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return Decision{}, fmt.Errorf("access policy: allow is %T, want bool", rs[0].Expressions[0].Value)
	}
	return Decision{Allow: v}, nil
}
