package logging

import (
	"fmt"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveKeys are attribute names whose values never reach the output.
var sensitiveKeys = map[string]struct{}{
	"password": {},
	"content":  {},
	"key":      {},
	"key_salt": {},
}

// redact returns args with values of sensitive keys masked. The input slice
// is left untouched.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		if _, ok := sensitiveKeys[strings.ToLower(fmt.Sprint(args[i]))]; !ok {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i+1] = redacted
	}
	if out == nil {
		return args
	}
	return out
}
