// Package corpus holds the canonical entities of a merged build and answers
// the queries renderers need: lookup by identifier, reference resolution, the
// all-symbols index and the inheritance and scope hierarchy.
package corpus

import (
	"slices"

	"github.com/wippyai/doccorpus/meta"
)

// Corpus is an immutable set of canonical entities.
type Corpus struct {
	byID  map[meta.SymbolID]meta.Info
	infos []meta.Info
}

// New indexes infos. Entities are ordered by identifier; for a repeated
// identifier the first entity is kept. Enums and typedefs owned by a scope
// are reachable through Get as well.
func New(infos []meta.Info) *Corpus {
	c := &Corpus{byID: make(map[meta.SymbolID]meta.Info, len(infos))}
	for _, info := range infos {
		if info == nil {
			continue
		}
		id := info.Common().ID
		if _, ok := c.byID[id]; ok {
			continue
		}
		c.byID[id] = info
		c.infos = append(c.infos, info)
	}
	slices.SortFunc(c.infos, func(a, b meta.Info) int {
		return a.Common().ID.Compare(b.Common().ID)
	})
	for _, info := range c.infos {
		if s := scopeOf(info); s != nil {
			c.indexOwned(s)
		}
	}
	return c
}

func (c *Corpus) indexOwned(s *meta.Scope) {
	for _, e := range s.Enums {
		if _, ok := c.byID[e.ID]; !ok {
			c.byID[e.ID] = e
		}
	}
	for _, t := range s.Typedefs {
		if _, ok := c.byID[t.ID]; !ok {
			c.byID[t.ID] = t
		}
	}
}

func scopeOf(info meta.Info) *meta.Scope {
	switch v := info.(type) {
	case *meta.Namespace:
		return &v.Children
	case *meta.Record:
		return &v.Children
	}
	return nil
}

// Get returns the entity with the given identifier.
func (c *Corpus) Get(id meta.SymbolID) (meta.Info, bool) {
	info, ok := c.byID[id]
	return info, ok
}

// Resolve returns the entity a reference points at. A reference to an
// entity outside the corpus is not an error; it reports false, and so does
// a reference without an identifier.
func (c *Corpus) Resolve(ref meta.Reference) (meta.Info, bool) {
	if ref.ID.IsZero() {
		return nil, false
	}
	info, ok := c.byID[ref.ID]
	if !ok || (ref.Kind != meta.KindDefault && info.Kind() != ref.Kind) {
		return nil, false
	}
	return info, true
}

// Infos returns the top-level entities ordered by identifier.
func (c *Corpus) Infos() []meta.Info {
	return c.infos
}

// Len returns the number of top-level entities.
func (c *Corpus) Len() int {
	return len(c.infos)
}
