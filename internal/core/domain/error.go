package domain

// ErrorKind is the closed set of failure categories the engine reasons about.
type ErrorKind string

const (
	ErrorKindTimeout            ErrorKind = "timeout"
	ErrorKindPermissionDenied   ErrorKind = "permission_denied"
	ErrorKindNetworkUnreachable ErrorKind = "network_unreachable"
	ErrorKindRateLimited        ErrorKind = "rate_limited"
	ErrorKindToolNotFound       ErrorKind = "tool_not_found"
	ErrorKindInvalidParameters  ErrorKind = "invalid_parameters"
	ErrorKindResourceExhausted  ErrorKind = "resource_exhausted"
	ErrorKindAuthFailed         ErrorKind = "authentication_failed"
	ErrorKindTargetUnreachable  ErrorKind = "target_unreachable"
	ErrorKindParsingError       ErrorKind = "parsing_error"
	ErrorKindUnknown            ErrorKind = "unknown"
)

// AllErrorKinds lists every kind, in declared order.
var AllErrorKinds = []ErrorKind{
	ErrorKindTimeout,
	ErrorKindPermissionDenied,
	ErrorKindNetworkUnreachable,
	ErrorKindRateLimited,
	ErrorKindToolNotFound,
	ErrorKindInvalidParameters,
	ErrorKindResourceExhausted,
	ErrorKindAuthFailed,
	ErrorKindTargetUnreachable,
	ErrorKindParsingError,
	ErrorKindUnknown,
}

// KindTag is an optional machine-level tag accompanying a raw failure
// (the runner's equivalent of an exception type). Tags are more reliable
// than message text and take priority during classification.
type KindTag string

const (
	TagNone         KindTag = ""
	TagTimeout      KindTag = "timeout"
	TagPermission   KindTag = "permission"
	TagConnectivity KindTag = "connectivity"
	TagNotFound     KindTag = "not_found"
)
