package validation

import (
	"sort"
	"strings"
)

// Code is a machine-checkable validation error category.
type Code string

const (
	CodeInvalidDate       Code = "invalid date"
	CodeInvalidTime       Code = "invalid time"
	CodeInvalidAdjustment Code = "invalid adjustment"
	CodeDuplicateEntry    Code = "duplicate entry"
	CodeInvalidVacation   Code = "invalid vacation"
	CodeInvalidPeriodNo   Code = "invalid period no"
)

// Violation is a single validation failure on one field.
type Violation struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// FieldErrors maps a form field name to its violations. A record with any
// reported violation is never persisted.
type FieldErrors map[string][]Violation

func (fe FieldErrors) Add(field string, code Code, message string) {
	fe[field] = append(fe[field], Violation{Code: code, Message: message})
}

func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// First returns the first message reported for a field, or "".
func (fe FieldErrors) First(field string) string {
	if vs := fe[field]; len(vs) > 0 {
		return vs[0].Message
	}
	return ""
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var b strings.Builder
	for i, field := range fields {
		for j, v := range fe[field] {
			if i > 0 || j > 0 {
				b.WriteString("; ")
			}
			b.WriteString(field)
			b.WriteString(": ")
			b.WriteString(v.Message)
		}
	}
	return b.String()
}
