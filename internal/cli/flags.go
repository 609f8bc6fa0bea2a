package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/orgchart/internal/dragdrop"
	"github.com/spf13/pflag"
)

// partValue is a --part flag restricted to the node regions a pointer can
// land on.
type partValue struct {
	part dragdrop.Part
}

var _ pflag.Value = (*partValue)(nil)

func (p *partValue) String() string { return string(p.part) }

func (p *partValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !dragdrop.ValidParts[s] {
		return fmt.Errorf("invalid part %q (valid: %s)", s, strings.Join(validPartNames(), ", "))
	}
	p.part = dragdrop.Part(s)
	return nil
}

func (p *partValue) Type() string { return "part" }

// or returns the flag's part, or fallback when the flag was not set.
func (p *partValue) or(fallback dragdrop.Part) dragdrop.Part {
	if p.part == "" {
		return fallback
	}
	return p.part
}

func validPartNames() []string {
	names := make([]string, 0, len(dragdrop.ValidParts))
	for k := range dragdrop.ValidParts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// addPartFlag registers --part on fs.
func addPartFlag(fs *pflag.FlagSet, p *partValue, usage string) {
	fs.Var(p, "part", usage+" ("+strings.Join(validPartNames(), "|")+")")
}
