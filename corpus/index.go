package corpus

import (
	"slices"
	"strings"

	"github.com/wippyai/doccorpus/meta"
)

// Symbol is one entry of the all-symbols index.
type Symbol struct {
	Name string // fully qualified
	Kind meta.InfoKind
	ID   meta.SymbolID
}

// AllSymbols lists every entity, owned enums and typedefs included, by
// qualified name in index order.
func (c *Corpus) AllSymbols() []Symbol {
	out := make([]Symbol, 0, len(c.byID))
	for _, info := range c.byID {
		out = append(out, Symbol{
			Name: meta.QualifiedName(info),
			Kind: info.Kind(),
			ID:   info.Common().ID,
		})
	}
	slices.SortFunc(out, func(a, b Symbol) int {
		if d := CompareNames(a.Name, b.Name); d != 0 {
			return d
		}
		return a.ID.Compare(b.ID)
	})
	return out
}

// CompareNames orders names case-insensitively. Names equal up to case put
// the lower-case spelling first; otherwise a name that is a prefix of the
// other sorts first.
func CompareNames(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if d := int(lower(a[i])) - int(lower(b[i])); d != 0 {
			return d
		}
	}
	if len(a) == len(b) {
		return strings.Compare(b, a)
	}
	return len(a) - len(b)
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
