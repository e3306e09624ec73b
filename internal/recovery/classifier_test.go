package recovery

import (
	"strings"
	"testing"

	"github.com/scanops/triage/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		expect  domain.ErrorKind
	}{
		{"Connection timed out", domain.ErrorKindTimeout},
		{"operation timed out after 300s", domain.ErrorKindTimeout},
		{"Permission denied: /etc/x", domain.ErrorKindPermissionDenied},
		{"sudo required for raw socket scan", domain.ErrorKindPermissionDenied},
		{"403 Forbidden", domain.ErrorKindPermissionDenied},
		{"no route to host", domain.ErrorKindNetworkUnreachable},
		{"connection refused", domain.ErrorKindNetworkUnreachable},
		{"429 Too Many Requests", domain.ErrorKindRateLimited},
		{"rate limit exceeded (429)", domain.ErrorKindRateLimited},
		{"quota exceeded for project", domain.ErrorKindRateLimited},
		{"bash: nuclei: command not found", domain.ErrorKindToolNotFound},
		{"no such file or directory", domain.ErrorKindToolNotFound},
		{"unknown option --fast", domain.ErrorKindInvalidParameters},
		{"invalid argument to -p", domain.ErrorKindInvalidParameters},
		{"out of memory", domain.ErrorKindResourceExhausted},
		{"no space left on device", domain.ErrorKindResourceExhausted},
		{"too many open files", domain.ErrorKindResourceExhausted},
		{"login failed: invalid credentials", domain.ErrorKindAuthFailed},
		{"expired token", domain.ErrorKindAuthFailed},
		{"target not responding", domain.ErrorKindTargetUnreachable},
		{"dns resolution failed for example.com", domain.ErrorKindTargetUnreachable},
		{"json decode error at offset 12", domain.ErrorKindParsingError},
		{"malformed XML output", domain.ErrorKindParsingError},
		{"segmentation fault (core dumped)", domain.ErrorKindUnknown},
		{"", domain.ErrorKindUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.message, domain.TagNone); got != tt.expect {
			t.Errorf("Classify(%q) = %v, want %v", tt.message, got, tt.expect)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	variants := []string{"RATE LIMIT exceeded", "Rate Limit Exceeded", "rate limit exceeded"}
	for _, msg := range variants {
		if got := Classify(msg, domain.TagNone); got != domain.ErrorKindRateLimited {
			t.Errorf("Classify(%q) = %v, want rate_limited", msg, got)
		}
	}
}

func TestClassify_TagPriority(t *testing.T) {
	tests := []struct {
		tag    domain.KindTag
		expect domain.ErrorKind
	}{
		{domain.TagTimeout, domain.ErrorKindTimeout},
		{domain.TagPermission, domain.ErrorKindPermissionDenied},
		{domain.TagConnectivity, domain.ErrorKindNetworkUnreachable},
		{domain.TagNotFound, domain.ErrorKindToolNotFound},
	}

	// The message alone would classify as rate_limited; the tag must win.
	for _, tt := range tests {
		if got := Classify("429 too many requests", tt.tag); got != tt.expect {
			t.Errorf("Classify with tag %q = %v, want %v", tt.tag, got, tt.expect)
		}
	}
}

func TestClassify_FirstDeclaredPatternWins(t *testing.T) {
	// "timed out" (timeout) appears before "connection refused" (network) in
	// the rule table, so a message containing both is a timeout.
	msg := "connection refused after request timed out"
	if got := Classify(msg, domain.TagNone); got != domain.ErrorKindTimeout {
		t.Errorf("Classify(%q) = %v, want timeout", msg, got)
	}

	// "not found" (tool_not_found) is declared before "host not found"
	// (target_unreachable); the earlier rule claims the message.
	msg = "host not found"
	if got := Classify(msg, domain.TagNone); got != domain.ErrorKindToolNotFound {
		t.Errorf("Classify(%q) = %v, want tool_not_found", msg, got)
	}
}

func TestClassify_Pure(t *testing.T) {
	msg := "Permission denied: /root/.ssh"
	first := Classify(msg, domain.TagNone)
	for i := 0; i < 100; i++ {
		if got := Classify(msg, domain.TagNone); got != first {
			t.Fatalf("Classify not deterministic: got %v then %v", first, got)
		}
	}
}

func TestPatternRules_LowercaseLiterals(t *testing.T) {
	// The scan lowercases the message only; rules must be declared lowercase
	// or they can never match.
	for _, rule := range patternRules {
		for _, s := range rule.substrings {
			if s != strings.ToLower(s) {
				t.Errorf("pattern %q for %v is not lowercase", s, rule.kind)
			}
		}
	}
}
