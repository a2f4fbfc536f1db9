package validation

import "sync"

// Validator runs a schema and keeps the issues from the most recent run.
// Issues persist until the next ValidateData call.
type Validator struct {
	schema Schema

	mu     sync.RWMutex
	issues []Issue
}

func New(schema Schema) *Validator {
	return &Validator{schema: schema}
}

// ValidateData reports whether data satisfies the schema. On success the
// stored issues are cleared; on failure they are replaced.
func (v *Validator) ValidateData(data any) bool {
	issues := v.schema.SafeParse(data)

	v.mu.Lock()
	defer v.mu.Unlock()
	if len(issues) == 0 {
		v.issues = nil
		return true
	}
	v.issues = issues
	return false
}

// Errors returns a copy of the issues recorded by the last validation.
func (v *Validator) Errors() []Issue {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if len(v.issues) == 0 {
		return nil
	}
	out := make([]Issue, len(v.issues))
	copy(out, v.issues)
	return out
}

// FieldErrors groups the last issues by dotted field name, first message wins.
func (v *Validator) FieldErrors() map[string]string {
	issues := v.Errors()
	out := make(map[string]string, len(issues))
	for _, issue := range issues {
		key := issue.Field()
		if _, exists := out[key]; !exists {
			out[key] = issue.Message
		}
	}
	return out
}
