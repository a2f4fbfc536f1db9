package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is a single violated rule. Path holds the field name segments
// relative to the validated record.
type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Field joins the path into a dotted field name.
func (i Issue) Field() string {
	return strings.Join(i.Path, ".")
}

const fallbackMessage = "Invalid value"

// Schema pairs the rules declared on a payload's struct tags with the
// user-facing message for each field and rule.
type Schema struct {
	engine   *validator.Validate
	messages map[string]string
}

// NewSchema creates a schema. Messages are keyed "field.rule", e.g. "name.min".
func NewSchema(engine *validator.Validate, messages map[string]string) Schema {
	if engine == nil {
		engine = Engine()
	}
	return Schema{engine: engine, messages: messages}
}

// SafeParse validates data and returns the issues found, nil when valid.
func (s Schema) SafeParse(data any) []Issue {
	engine := s.engine
	if engine == nil {
		engine = Engine()
	}

	err := engine.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Path: []string{}, Message: err.Error()}}
	}

	root := reflect.Indirect(reflect.ValueOf(data)).Type()
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := issuePath(fe.Namespace())
		issues = append(issues, Issue{Path: path, Message: s.message(fe.Field(), fe.Tag())})

		// validator 在字段的第一个失败规则处停止，其余规则逐个补充检查
		for _, rule := range remainingRules(root, fe) {
			if engine.Var(fe.Value(), rule) != nil {
				issues = append(issues, Issue{Path: path, Message: s.message(fe.Field(), ruleName(rule))})
			}
		}
	}
	return issues
}

// remainingRules returns the rules declared after the one that failed on a
// top-level field. Struct-level rules have no tag position and yield nil.
func remainingRules(root reflect.Type, fe validator.FieldError) []string {
	if root.Kind() != reflect.Struct {
		return nil
	}
	field, ok := root.FieldByName(fe.StructField())
	if !ok {
		return nil
	}
	rules := strings.Split(field.Tag.Get("validate"), ",")
	for i, rule := range rules {
		if ruleName(rule) != fe.Tag() {
			continue
		}
		rest := make([]string, 0, len(rules)-i-1)
		for _, next := range rules[i+1:] {
			switch ruleName(next) {
			case "", "omitempty", "omitnil", "required":
				continue
			}
			rest = append(rest, next)
		}
		return rest
	}
	return nil
}

func ruleName(rule string) string {
	return strings.SplitN(strings.TrimSpace(rule), "=", 2)[0]
}

func (s Schema) message(field, tag string) string {
	if msg, ok := s.messages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := s.messages[field]; ok {
		return msg
	}
	return fallbackMessage
}

// issuePath drops the root struct name from a validator namespace.
func issuePath(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return parts
	}
	return parts[1:]
}
