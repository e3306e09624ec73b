package recovery

import "github.com/scanops/triage/internal/core/domain"

// parameterDeltas holds the tool-specific, kind-specific replacement values
// applied when a run is retried after a classified failure. Values are the
// tool's own CLI vocabulary.
var parameterDeltas = map[string]map[domain.ErrorKind]map[string]string{
	"nmap": {
		domain.ErrorKindTimeout:           {"timing": "-T2", "reduce_ports": "true"},
		domain.ErrorKindRateLimited:       {"timing": "-T1", "delay": "1000ms"},
		domain.ErrorKindResourceExhausted: {"max_parallelism": "10"},
	},
	"gobuster": {
		domain.ErrorKindTimeout:           {"threads": "10", "timeout": "30s"},
		domain.ErrorKindRateLimited:       {"threads": "5", "rate-limit": "10"},
		domain.ErrorKindResourceExhausted: {"threads": "5"},
	},
	"nuclei": {
		domain.ErrorKindTimeout:           {"concurrency": "10", "timeout": "30"},
		domain.ErrorKindRateLimited:       {"rate-limit": "10", "concurrency": "5"},
		domain.ErrorKindResourceExhausted: {"concurrency": "5"},
	},
	"feroxbuster": {
		domain.ErrorKindTimeout:           {"threads": "10", "timeout": "30"},
		domain.ErrorKindRateLimited:       {"threads": "5", "rate-limit": "10"},
		domain.ErrorKindResourceExhausted: {"threads": "5"},
	},
	"ffuf": {
		domain.ErrorKindTimeout:           {"threads": "10", "timeout": "30"},
		domain.ErrorKindRateLimited:       {"threads": "5", "rate": "10"},
		domain.ErrorKindResourceExhausted: {"threads": "5"},
	},
}

// genericDeltas applies when no tool-specific rule exists: lower concurrency
// and trade speed for survivability, keyed by kind only.
var genericDeltas = map[domain.ErrorKind]map[string]string{
	domain.ErrorKindTimeout:           {"timeout": "60", "threads": "5"},
	domain.ErrorKindRateLimited:       {"delay": "2s", "threads": "3"},
	domain.ErrorKindResourceExhausted: {"threads": "3", "memory_limit": "1G"},
}

// AdjustParameters rewrites tool parameters to work around a failure kind.
// Pure and non-mutating: delta keys overwrite same-named originals, every
// other original key passes through unchanged, and the input map is left
// untouched. Kinds with no delta return a copy of the originals as-is.
func AdjustParameters(tool string, kind domain.ErrorKind, original map[string]string) map[string]string {
	delta := parameterDeltas[tool][kind]
	if delta == nil {
		delta = genericDeltas[kind]
	}

	adjusted := make(map[string]string, len(original)+len(delta))
	for k, v := range original {
		adjusted[k] = v
	}
	for k, v := range delta {
		adjusted[k] = v
	}
	return adjusted
}
