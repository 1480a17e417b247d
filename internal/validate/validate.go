// Package validate is a small declarative rule engine for request fields.
//
// Every rule of every field is evaluated, in declaration order, and the
// messages of all failing rules are returned together. Nothing stops at the
// first failure, so clients can fix every problem in one round trip.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule is a single check on a field value along with the human-readable
// message reported when the check fails.
type Rule struct {
	Message string
	Check   func(value string) bool
}

// Field binds a value to the rules evaluated against it.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// F is shorthand for constructing a [Field].
func F(name, value string, rules ...Rule) Field {
	return Field{Name: name, Value: value, Rules: rules}
}

// Errors is the ordered list of violation messages. An empty list means the
// input conforms.
type Errors []string

// Error satisfies [error].
func (e Errors) Error() string {
	return "validation failed: " + strings.Join(e, "; ")
}

// Err returns e as an error, or nil if there are no violations.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validate evaluates all rules for all fields and returns every violation.
func Validate(fields ...Field) Errors {
	var errs Errors
	for _, field := range fields {
		for _, rule := range field.Rules {
			if !rule.Check(field.Value) {
				errs = append(errs, rule.Message)
			}
		}
	}
	return errs
}

// Required rejects empty and whitespace-only values.
func Required(msg string) Rule {
	return Rule{
		Message: msg,
		Check: func(value string) bool {
			return strings.TrimSpace(value) != ""
		},
	}
}

// Match requires the value to match re.
func Match(re *regexp.Regexp, msg string) Rule {
	return Rule{
		Message: msg,
		Check:   re.MatchString,
	}
}

var emailRegex = regexp.MustCompile(`(?i)^[^@\s]+@[^@.\s]+\.[a-z]+$`)

// Email requires a local@domain.tld address.
func Email(msg string) Rule {
	return Match(emailRegex, msg)
}

// Length requires the value to be between minLen and maxLen characters,
// inclusive.
func Length(minLen, maxLen int, msg string) Rule {
	return Rule{
		Message: msg,
		Check: func(value string) bool {
			n := utf8.RuneCountInString(value)
			return n >= minLen && n <= maxLen
		},
	}
}

// ID requires a positive base-10 integer. Empty values are left to
// [Required].
func ID(msg string) Rule {
	return Rule{
		Message: msg,
		Check: func(value string) bool {
			if value == "" {
				return true
			}
			id, err := strconv.ParseInt(value, 10, 64)
			return err == nil && id > 0
		},
	}
}
