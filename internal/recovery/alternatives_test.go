package recovery

import (
	"reflect"
	"testing"

	"github.com/scanops/triage/internal/core/domain"
)

func TestAlternatives(t *testing.T) {
	tests := []struct {
		name   string
		tool   string
		c      Constraints
		expect []string
	}{
		{
			name:   "unconstrained keeps ranked order",
			tool:   "gobuster",
			expect: []string{"feroxbuster", "dirsearch", "ffuf", "dirb"},
		},
		{
			name:   "no privileges drops raw-socket scanners",
			tool:   "nmap",
			c:      Constraints{RequireNoPrivileges: true},
			expect: []string{"rustscan"},
		},
		{
			name:   "prefer faster drops slow tools",
			tool:   "subfinder",
			c:      Constraints{PreferFaster: true},
			expect: []string{"assetfinder", "findomain"},
		},
		{
			name:   "prefer offline keeps only passive tools",
			tool:   "katana",
			c:      Constraints{PreferOffline: true},
			expect: []string{"gau", "waybackurls"},
		},
		{
			name: "unknown tool yields nothing",
			tool: "hydra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Alternatives(tt.tool, tt.c)
			if !reflect.DeepEqual(got, tt.expect) && !(len(got) == 0 && len(tt.expect) == 0) {
				t.Errorf("Alternatives(%q, %+v) = %v, want %v", tt.tool, tt.c, got, tt.expect)
			}
		})
	}
}

func TestAlternatives_FallbackWhenFilterEmptiesPool(t *testing.T) {
	// Both rustscan substitutes need raw sockets, so the privilege filter
	// empties the pool; the unfiltered ranking must come back rather than an
	// empty answer.
	got := Alternatives("rustscan", Constraints{RequireNoPrivileges: true})
	want := []string{"nmap", "masscan"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Alternatives(rustscan) = %v, want unfiltered %v", got, want)
	}

	// Same shape for credentials: every prowler substitute needs cloud auth.
	got = Alternatives("prowler", Constraints{RequireNoAuth: true})
	want = []string{"scout-suite", "cloudmapper"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Alternatives(prowler) = %v, want unfiltered %v", got, want)
	}
}

func TestAlternatives_NotReciprocal(t *testing.T) {
	// sqlmap lists substitutes, but nothing lists sqlmap back. The directory
	// is directional on purpose.
	if alts := Alternatives("sqlninja", Constraints{}); len(alts) != 0 {
		t.Errorf("sqlninja should have no substitutes, got %v", alts)
	}
	if alts := Alternatives("sqlmap", Constraints{}); len(alts) == 0 {
		t.Error("sqlmap should have substitutes")
	}
}

func TestBestAlternative(t *testing.T) {
	got, ok := BestAlternative("nuclei", Constraints{})
	if !ok || got != "jaeles" {
		t.Errorf("BestAlternative(nuclei) = %q, %v; want jaeles, true", got, ok)
	}

	if _, ok := BestAlternative("nonexistent-tool", Constraints{}); ok {
		t.Error("BestAlternative must report false for unknown tools")
	}
}

func TestConstraintsFromStrategy(t *testing.T) {
	st := domain.RecoveryStrategy{
		Action: domain.ActionSwitchTool,
		Parameters: map[string]any{
			"require_no_privileges": true,
			"prefer_faster_tools":   true,
		},
	}

	c := ConstraintsFromStrategy(st)
	if !c.RequireNoPrivileges || !c.PreferFaster {
		t.Errorf("ConstraintsFromStrategy = %+v, want both set", c)
	}

	empty := ConstraintsFromStrategy(domain.RecoveryStrategy{Action: domain.ActionSwitchTool})
	if empty.RequireNoPrivileges || empty.PreferFaster {
		t.Errorf("no parameters must mean no constraints, got %+v", empty)
	}
}
