package recovery

// Fallback chains keep critical campaign phases moving when their preferred
// tools keep failing: each operation declares tool chains in preference order,
// plus a basic last-resort set that is assumed always installed.

var fallbackChains = map[string][][]string{
	"network_discovery": {
		{"nmap", "rustscan", "masscan"},
		{"rustscan", "nmap"},
		{"ping", "telnet"},
	},
	"web_discovery": {
		{"gobuster", "feroxbuster", "dirsearch"},
		{"feroxbuster", "ffuf"},
		{"curl", "wget"},
	},
	"vulnerability_scanning": {
		{"nuclei", "jaeles", "nikto"},
		{"nikto", "w3af"},
		{"curl"},
	},
	"subdomain_enumeration": {
		{"subfinder", "amass", "assetfinder"},
		{"amass", "findomain"},
		{"dig", "nslookup"},
	},
	"parameter_discovery": {
		{"arjun", "paramspider", "x8"},
		{"ffuf", "wfuzz"},
		{"manual_testing"},
	},
}

var basicFallbacks = map[string][]string{
	"network_discovery":      {"ping"},
	"web_discovery":          {"curl"},
	"vulnerability_scanning": {"curl"},
	"subdomain_enumeration":  {"dig"},
}

var criticalOperations = map[string]bool{
	"network_discovery":      true,
	"web_discovery":          true,
	"vulnerability_scanning": true,
	"subdomain_enumeration":  true,
}

// FallbackChain returns the first declared chain for the operation that still
// has a viable tool after removing failedTools, else the basic fallback set.
// Unknown operations get {"manual_testing"}: the campaign degrades, it does
// not stop.
func FallbackChain(operation string, failedTools []string) []string {
	failed := make(map[string]bool, len(failedTools))
	for _, t := range failedTools {
		failed[t] = true
	}

	for _, chain := range fallbackChains[operation] {
		viable := make([]string, 0, len(chain))
		for _, tool := range chain {
			if !failed[tool] {
				viable = append(viable, tool)
			}
		}
		if len(viable) > 0 {
			return viable
		}
	}

	if basic, ok := basicFallbacks[operation]; ok {
		return basic
	}
	return []string{"manual_testing"}
}

// IsCriticalOperation reports whether an operation must not fail completely.
func IsCriticalOperation(operation string) bool {
	return criticalOperations[operation]
}
