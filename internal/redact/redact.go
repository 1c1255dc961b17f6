// Package redact scrubs credentials, tokens and SQL out of error text before
// it is logged.
package redact

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; connection strings go first so their passwords are
// gone before the host rule sees them.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)(postgres(?:ql)?|redis|rediss)://[^@\s]+@`),
		placeholder: "$1://[REDACTED_CREDENTIAL]@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]{3,}`),
		placeholder: "[REDACTED_CREDENTIAL]",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		placeholder: "[REDACTED_JWT]",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9_\-.~+/]{8,}=*`),
		placeholder: "[REDACTED_KEY]",
	},
	{
		pattern:     regexp.MustCompile(`(?i)(secret|api[_-]?key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		placeholder: "[REDACTED_KEY]",
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|TRUNCATE)\b[\s\w,*()$.='"]+\b(FROM|INTO|SET|TABLE)\b[\s\w,*()$.='"]*`,
		),
		placeholder: "[REDACTED_SQL]",
	},
}

// String returns input with sensitive fragments replaced by placeholders.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.placeholder)
	}
	return input
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
