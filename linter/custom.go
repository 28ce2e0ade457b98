package linter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/walker"
)

// CustomRule declares a rule in configuration. Assert is an expr-lang
// expression evaluated per target that must yield true; when it yields false
// a warning with Code and Message is reported at the target.
//
// The expression sees:
//
//	node       the target object as plain values (map[string]any)
//	name       the map key of named objects (schema, media type, ...)
//	method     the HTTP method within operations
//	path       the path template within paths and webhooks
//	status     the status code within responses
//	pointer    the JSON Pointer where the target is written
//	component  whether the target was reached through components
//	webhook    whether the target was reached through webhooks
//	has(key)   whether the target object holds key
//
// Message may contain {name}, {method}, {path}, {status} and {pointer}.
type CustomRule struct {
	ID          string `mapstructure:"id" json:"id" yaml:"id"`
	AppliesTo   string `mapstructure:"applies_to" json:"applies_to" yaml:"applies_to"`
	Code        string `mapstructure:"code" json:"code,omitempty" yaml:"code,omitempty"`
	Message     string `mapstructure:"message" json:"message,omitempty" yaml:"message,omitempty"`
	Assert      string `mapstructure:"assert" json:"assert" yaml:"assert"`
	Description string `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
}

// exprEnv is the environment custom rule expressions are evaluated in.
type exprEnv struct {
	Node      map[string]any        `expr:"node"`
	Name      string                `expr:"name"`
	Method    string                `expr:"method"`
	Path      string                `expr:"path"`
	Status    string                `expr:"status"`
	Pointer   string                `expr:"pointer"`
	Component bool                  `expr:"component"`
	Webhook   bool                  `expr:"webhook"`
	Has       func(key string) bool `expr:"has"`
}

// CompileCustom turns a configured rule into a Definition. Syntax and type
// errors in the expression are reported here as *oaserrors.ConfigError;
// runtime errors surface as RULE_FAILURE warnings during a run.
func CompileCustom(r CustomRule) (Definition, error) {
	invalid := func(msg string, cause error) error {
		return &oaserrors.ConfigError{Option: "custom_rules", Value: r.ID, Message: msg, Cause: cause}
	}
	if r.ID == "" {
		return Definition{}, invalid("rule id must not be empty", nil)
	}
	category, ok := walker.ParseCategory(r.AppliesTo)
	if !ok {
		return Definition{}, invalid(fmt.Sprintf("unknown applies_to %q", r.AppliesTo), nil)
	}
	if strings.TrimSpace(r.Assert) == "" {
		return Definition{}, invalid("assert must not be empty", nil)
	}

	program, err := expr.Compile(r.Assert, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return Definition{}, invalid("invalid assert expression", err)
	}

	code := r.Code
	if code == "" {
		code = strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(r.ID))
	}
	message := r.Message
	if message == "" {
		message = fmt.Sprintf("assertion of rule %s failed: %s", r.ID, r.Assert)
	}
	description := r.Description
	if description == "" {
		description = r.Assert
	}

	return Definition{
		ID:          r.ID,
		AppliesTo:   category,
		Description: description,
		Check:       customCheck(program, code, message),
	}, nil
}

func customCheck(program *vm.Program, code, message string) CheckFunc {
	return func(t Target) ([]issues.Issue, error) {
		node, _ := t.Node.Value().(map[string]any)
		pointer := t.Node.Path().String()
		env := exprEnv{
			Node:      node,
			Name:      t.Name,
			Method:    t.Method,
			Path:      t.PathTemplate,
			Status:    t.StatusCode,
			Pointer:   pointer,
			Component: t.IsComponent,
			Webhook:   t.IsWebhook,
			Has:       t.Node.Has,
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, err
		}
		if ok, _ := out.(bool); ok {
			return nil, nil
		}

		msg := strings.NewReplacer(
			"{name}", t.Name,
			"{method}", strings.ToUpper(t.Method),
			"{path}", t.PathTemplate,
			"{status}", t.StatusCode,
			"{pointer}", pointer,
		).Replace(message)
		return []issues.Issue{issues.NewWarning(code, t.Node.Origin(), "%s", msg)}, nil
	}
}

// ExtendWithCustom compiles rules and appends them to reg.
func ExtendWithCustom(reg *Registry, rules ...CustomRule) (*Registry, error) {
	defs := make([]Definition, 0, len(rules))
	for _, r := range rules {
		d, err := CompileCustom(r)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return reg.Extend(defs...)
}
