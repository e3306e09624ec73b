package recovery

import "github.com/scanops/triage/internal/core/domain"

// Constraints narrows the substitute pool. Exclusions are driven by the
// per-tool trait table below, not by call-site special cases.
type Constraints struct {
	// RequireNoPrivileges drops alternatives that normally need root.
	RequireNoPrivileges bool
	// PreferFaster drops alternatives known to be slow.
	PreferFaster bool
	// PreferOffline keeps only alternatives that work from passive sources
	// without touching the target network.
	PreferOffline bool
	// RequireNoAuth drops alternatives that need credentials to run at all.
	RequireNoAuth bool
}

// ConstraintsFromStrategy derives substitution constraints from a switch_tool
// strategy's action parameters.
func ConstraintsFromStrategy(st domain.RecoveryStrategy) Constraints {
	var c Constraints
	if v, ok := st.Parameters["require_no_privileges"].(bool); ok && v {
		c.RequireNoPrivileges = true
	}
	if v, ok := st.Parameters["prefer_faster_tools"].(bool); ok && v {
		c.PreferFaster = true
	}
	if v, ok := st.Parameters["prefer_offline_tools"].(bool); ok && v {
		c.PreferOffline = true
	}
	if v, ok := st.Parameters["no_auth_required"].(bool); ok && v {
		c.RequireNoAuth = true
	}
	return c
}

// toolTraits declares the properties constraint filtering keys on.
type toolTraits struct {
	privileged bool // raw sockets or root normally required
	slow       bool // known long runtimes on typical scopes
	offline    bool // passive sources only, no target traffic
	needsAuth  bool // unusable without credentials
}

var traits = map[string]toolTraits{
	"nmap":        {privileged: true},
	"masscan":     {privileged: true},
	"zmap":        {privileged: true},
	"amass":       {slow: true},
	"w3af":        {slow: true},
	"gau":         {offline: true},
	"waybackurls": {offline: true},
	"prowler":     {needsAuth: true},
	"scout-suite": {needsAuth: true},
	"cloudmapper": {needsAuth: true},
}

// toolAlternatives is the static substitution directory: tool name to ranked
// substitutes with equivalent capability. Not guaranteed reciprocal.
var toolAlternatives = map[string][]string{
	// Network scanning
	"nmap":     {"rustscan", "masscan", "zmap"},
	"rustscan": {"nmap", "masscan"},
	"masscan":  {"nmap", "rustscan", "zmap"},

	// Directory/file discovery
	"gobuster":    {"feroxbuster", "dirsearch", "ffuf", "dirb"},
	"feroxbuster": {"gobuster", "dirsearch", "ffuf"},
	"dirsearch":   {"gobuster", "feroxbuster", "ffuf"},
	"ffuf":        {"gobuster", "feroxbuster", "dirsearch"},

	// Vulnerability scanning
	"nuclei": {"jaeles", "nikto", "w3af"},
	"jaeles": {"nuclei", "nikto"},
	"nikto":  {"nuclei", "jaeles", "w3af"},

	// Web crawling
	"katana":      {"gau", "waybackurls", "hakrawler"},
	"gau":         {"katana", "waybackurls", "hakrawler"},
	"waybackurls": {"gau", "katana", "hakrawler"},

	// Parameter discovery
	"arjun":       {"paramspider", "x8", "ffuf"},
	"paramspider": {"arjun", "x8"},
	"x8":          {"arjun", "paramspider"},

	// SQL injection
	"sqlmap": {"sqlninja", "jsql-injection"},

	// XSS testing
	"dalfox": {"xsser", "xsstrike"},

	// Subdomain enumeration
	"subfinder":   {"amass", "assetfinder", "findomain"},
	"amass":       {"subfinder", "assetfinder", "findomain"},
	"assetfinder": {"subfinder", "amass", "findomain"},

	// Cloud security
	"prowler":     {"scout-suite", "cloudmapper"},
	"scout-suite": {"prowler", "cloudmapper"},

	// Container security
	"trivy": {"clair", "docker-bench-security"},
	"clair": {"trivy", "docker-bench-security"},

	// Binary analysis
	"ghidra":  {"radare2", "ida", "binary-ninja"},
	"radare2": {"ghidra", "objdump", "gdb"},
	"gdb":     {"radare2", "lldb"},

	// Exploitation
	"pwntools": {"ropper", "ropgadget"},
	"ropper":   {"ropgadget", "pwntools"},
	"ropgadget": {"ropper", "pwntools"},
}

// Alternatives returns the ranked substitutes for a tool after constraint
// filtering, best pick first. Unknown tools yield an empty list. If filtering
// empties a non-empty pool, the unfiltered list is returned instead: a
// constrained substitute beats none at all.
func Alternatives(tool string, c Constraints) []string {
	ranked := toolAlternatives[tool]
	if len(ranked) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(ranked))
	for _, alt := range ranked {
		tr := traits[alt]
		if c.RequireNoPrivileges && tr.privileged {
			continue
		}
		if c.PreferFaster && tr.slow {
			continue
		}
		if c.PreferOffline && !tr.offline {
			continue
		}
		if c.RequireNoAuth && tr.needsAuth {
			continue
		}
		filtered = append(filtered, alt)
	}

	if len(filtered) == 0 {
		return ranked
	}
	return filtered
}

// BestAlternative returns the top-ranked substitute, if any exists.
func BestAlternative(tool string, c Constraints) (string, bool) {
	alts := Alternatives(tool, c)
	if len(alts) == 0 {
		return "", false
	}
	return alts[0], true
}
