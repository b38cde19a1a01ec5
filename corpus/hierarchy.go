package corpus

import (
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"

	"github.com/wippyai/doccorpus/meta"
)

const edgeKind = "kind"

// Edge kinds of the hierarchy graph.
const (
	EdgeBase        = "base"
	EdgeVirtualBase = "virtual_base"
	EdgeChild       = "child"
)

// Hierarchy is a directed graph over the corpus. Edges run from a record to
// its bases and from a scope to its children. Targets outside the corpus
// and unresolved references have no vertex and their edges are left out.
type Hierarchy struct {
	g    graph.Graph[meta.SymbolID, meta.Info]
	succ map[meta.SymbolID]map[meta.SymbolID]graph.Edge[meta.SymbolID]
	pred map[meta.SymbolID]map[meta.SymbolID]graph.Edge[meta.SymbolID]
	c    *Corpus
}

func hashInfo(info meta.Info) meta.SymbolID {
	return info.Common().ID
}

// NewHierarchy builds the hierarchy of c.
func NewHierarchy(c *Corpus) (*Hierarchy, error) {
	g := graph.New(hashInfo, graph.Directed())
	for _, info := range c.byID {
		if err := g.AddVertex(info); err != nil {
			return nil, fmt.Errorf("add vertex %s: %w", info.Common().ID, err)
		}
	}

	link := func(from meta.SymbolID, refs []meta.Reference, kind string) {
		for _, ref := range refs {
			if _, ok := c.byID[ref.ID]; !ok || ref.ID.IsZero() || ref.ID == from {
				continue
			}
			// duplicate edges keep their first kind
			_ = g.AddEdge(from, ref.ID, graph.EdgeAttribute(edgeKind, kind))
		}
	}
	for id, info := range c.byID {
		switch v := info.(type) {
		case *meta.Record:
			link(id, v.Parents, EdgeBase)
			link(id, v.VirtualParents, EdgeVirtualBase)
			link(id, scopeRefs(&v.Children), EdgeChild)
		case *meta.Namespace:
			link(id, scopeRefs(&v.Children), EdgeChild)
		}
	}

	succ, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("adjacency: %w", err)
	}
	pred, err := g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("predecessors: %w", err)
	}
	return &Hierarchy{g: g, succ: succ, pred: pred, c: c}, nil
}

func scopeRefs(s *meta.Scope) []meta.Reference {
	refs := make([]meta.Reference, 0, len(s.Namespaces)+len(s.Records)+len(s.Functions)+len(s.Enums)+len(s.Typedefs))
	refs = append(refs, s.Namespaces...)
	refs = append(refs, s.Records...)
	refs = append(refs, s.Functions...)
	for _, e := range s.Enums {
		refs = append(refs, meta.RefTo(e, meta.RelationDefault))
	}
	for _, t := range s.Typedefs {
		refs = append(refs, meta.RefTo(t, meta.RelationDefault))
	}
	return refs
}

func (h *Hierarchy) collect(edges map[meta.SymbolID]graph.Edge[meta.SymbolID], pick func(graph.Edge[meta.SymbolID]) meta.SymbolID, kinds ...string) []meta.Info {
	var out []meta.Info
	for _, e := range edges {
		if !slices.Contains(kinds, e.Properties.Attributes[edgeKind]) {
			continue
		}
		if info, ok := h.c.byID[pick(e)]; ok {
			out = append(out, info)
		}
	}
	slices.SortFunc(out, func(a, b meta.Info) int {
		return a.Common().ID.Compare(b.Common().ID)
	})
	return out
}

func target(e graph.Edge[meta.SymbolID]) meta.SymbolID { return e.Target }
func source(e graph.Edge[meta.SymbolID]) meta.SymbolID { return e.Source }

// Bases returns the direct bases of a record, virtual ones included.
func (h *Hierarchy) Bases(id meta.SymbolID) []meta.Info {
	return h.collect(h.succ[id], target, EdgeBase, EdgeVirtualBase)
}

// Derived returns the records that name id as a direct base.
func (h *Hierarchy) Derived(id meta.SymbolID) []meta.Info {
	return h.collect(h.pred[id], source, EdgeBase, EdgeVirtualBase)
}

// Children returns the entities in the scope of a namespace or record.
func (h *Hierarchy) Children(id meta.SymbolID) []meta.Info {
	return h.collect(h.succ[id], target, EdgeChild)
}

// Ancestors returns every transitive base of id, nearest first. Each base
// appears once even when reachable through several paths.
func (h *Hierarchy) Ancestors(id meta.SymbolID) []meta.Info {
	seen := map[meta.SymbolID]bool{id: true}
	var out []meta.Info
	queue := []meta.SymbolID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, b := range h.Bases(cur) {
			bid := b.Common().ID
			if seen[bid] {
				continue
			}
			seen[bid] = true
			out = append(out, b)
			queue = append(queue, bid)
		}
	}
	return out
}

// Order returns the number of vertices.
func (h *Hierarchy) Order() int {
	n, _ := h.g.Order()
	return n
}
