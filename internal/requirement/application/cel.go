package requirement

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

// ErrExpression is returned when a CEL expression does not compile.
var ErrExpression = errors.New("invalid expression")

const defaultRuleMessage = "does not satisfy rule"

var predicateEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("settings", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("capabilities", cel.ListType(cel.StringType)),
	)
})

var ruleEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("value", cel.StringType),
		cel.Variable("values", cel.MapType(cel.StringType, cel.StringType)),
	)
})

// compileBool compiles expr in env and checks that it yields a bool.
func compileBool(env *cel.Env, expr string) (cel.Program, error) {
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrExpression, expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q returns %s, want bool", ErrExpression, expr, ast.OutputType())
	}
	prg, err := env.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrExpression, expr, err)
	}
	return prg, nil
}

func evalBool(ctx context.Context, prg cel.Program, vars map[string]any) (bool, error) {
	val, _, err := prg.ContextEval(ctx, vars)
	if err != nil {
		return false, err
	}
	b, ok := val.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, want bool", val.Value())
	}
	return b, nil
}

// celPredicate is a requirement.Predicate backed by a CEL expression over
// `settings` and `capabilities`.
type celPredicate struct {
	expr string
	prg  cel.Program
}

// CompilePredicate compiles a predicate expression.
func CompilePredicate(expr string) (requirement.Predicate, error) {
	env, err := predicateEnv()
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}
	prg, err := compileBool(env, expr)
	if err != nil {
		return nil, err
	}
	return &celPredicate{expr: expr, prg: prg}, nil
}

func (p *celPredicate) Evaluate(ctx context.Context, env requirement.Environment) (bool, error) {
	settings, err := env.Settings(ctx)
	if err != nil {
		return false, fmt.Errorf("read settings: %w", err)
	}
	caps, err := env.Capabilities(ctx)
	if err != nil {
		return false, fmt.Errorf("read capabilities: %w", err)
	}
	if caps == nil {
		caps = []string{}
	}

	ok, err := evalBool(ctx, p.prg, map[string]any{
		"settings":     settings,
		"capabilities": caps,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.expr, err)
	}
	return ok, nil
}

func (p *celPredicate) String() string {
	return p.expr
}

// celRule is a requirement.FieldRule backed by a CEL expression over `value`
// and `values`.
type celRule struct {
	expr    string
	message string
	prg     cel.Program
}

// CompileRule compiles a field rule. message is reported when the rule is false;
// an empty message uses a generic one.
func CompileRule(expr, message string) (requirement.FieldRule, error) {
	env, err := ruleEnv()
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}
	prg, err := compileBool(env, expr)
	if err != nil {
		return nil, err
	}
	if message == "" {
		message = defaultRuleMessage
	}
	return &celRule{expr: expr, message: message, prg: prg}, nil
}

func (r *celRule) Check(value string, values requirement.Values) error {
	vals := map[string]string(values)
	if vals == nil {
		vals = map[string]string{}
	}
	ok, err := evalBool(context.Background(), r.prg, map[string]any{
		"value":  value,
		"values": vals,
	})
	if err != nil || !ok {
		return errors.New(r.message)
	}
	return nil
}
