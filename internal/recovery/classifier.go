package recovery

import (
	"strings"

	"github.com/scanops/triage/internal/core/domain"
)

// patternRule maps message substrings to an ErrorKind. Rules are tested in
// declared order and the first match wins; a message that could fall into two
// categories is resolved by whichever rule appears first. The order below is
// part of the classification contract.
type patternRule struct {
	substrings []string
	kind       domain.ErrorKind
}

var patternRules = []patternRule{
	{[]string{"timeout", "timed out", "connection timeout", "read timeout"}, domain.ErrorKindTimeout},
	{[]string{"operation timed out", "command timeout"}, domain.ErrorKindTimeout},

	{[]string{"permission denied", "access denied", "forbidden", "not authorized"}, domain.ErrorKindPermissionDenied},
	{[]string{"sudo required", "root required", "insufficient privileges"}, domain.ErrorKindPermissionDenied},

	{[]string{"network unreachable", "host unreachable", "no route to host"}, domain.ErrorKindNetworkUnreachable},
	{[]string{"connection refused", "connection reset", "network error"}, domain.ErrorKindNetworkUnreachable},

	{[]string{"rate limit", "too many requests", "throttled", "429"}, domain.ErrorKindRateLimited},
	{[]string{"request limit exceeded", "quota exceeded"}, domain.ErrorKindRateLimited},

	{[]string{"command not found", "no such file or directory", "not found"}, domain.ErrorKindToolNotFound},
	{[]string{"executable not found", "binary not found"}, domain.ErrorKindToolNotFound},

	{[]string{"invalid argument", "invalid option", "unknown option"}, domain.ErrorKindInvalidParameters},
	{[]string{"bad parameter", "invalid parameter", "syntax error"}, domain.ErrorKindInvalidParameters},

	{[]string{"out of memory", "memory error", "disk full", "no space left"}, domain.ErrorKindResourceExhausted},
	{[]string{"resource temporarily unavailable", "too many open files"}, domain.ErrorKindResourceExhausted},

	{[]string{"authentication failed", "login failed", "invalid credentials"}, domain.ErrorKindAuthFailed},
	{[]string{"unauthorized", "invalid token", "expired token"}, domain.ErrorKindAuthFailed},

	{[]string{"target unreachable", "target not responding", "target down"}, domain.ErrorKindTargetUnreachable},
	{[]string{"host not found", "dns resolution failed"}, domain.ErrorKindTargetUnreachable},

	{[]string{"parse error", "parsing failed", "invalid format", "malformed"}, domain.ErrorKindParsingError},
	{[]string{"json decode error", "xml parse error", "invalid json"}, domain.ErrorKindParsingError},
}

// Classify maps a raw failure message plus an optional kind tag to exactly one
// ErrorKind. Pure and total: unmatched text is ErrorKindUnknown, never an error.
//
// A non-empty tag short-circuits the text scan; the runner knows more about
// what actually happened than the tool's stderr does.
func Classify(message string, tag domain.KindTag) domain.ErrorKind {
	switch tag {
	case domain.TagTimeout:
		return domain.ErrorKindTimeout
	case domain.TagPermission:
		return domain.ErrorKindPermissionDenied
	case domain.TagConnectivity:
		return domain.ErrorKindNetworkUnreachable
	case domain.TagNotFound:
		return domain.ErrorKindToolNotFound
	}

	text := strings.ToLower(message)
	for _, rule := range patternRules {
		for _, s := range rule.substrings {
			if strings.Contains(text, s) {
				return rule.kind
			}
		}
	}

	return domain.ErrorKindUnknown
}
