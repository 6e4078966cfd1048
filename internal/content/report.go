package content

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one authoring problem found in the library.
type Issue struct {
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s: %s", i.Severity, i.File, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %s", i.Severity, i.File, i.Field, i.Message)
}

type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) add(sev Severity, file, field, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{Severity: sev, File: file, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

func (r *Report) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// ValidationError is returned by a strict load when the library has errors.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "content validation failed"
	}
	lines := make([]string, 0, len(err.Issues)+1)
	lines = append(lines, fmt.Sprintf("content validation failed with %d error(s):", len(err.Issues)))
	for _, issue := range err.Issues {
		lines = append(lines, "  "+issue.String())
	}
	return strings.Join(lines, "\n")
}
