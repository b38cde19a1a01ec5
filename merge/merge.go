// Package merge folds the partial entities decoded from every unit into one
// canonical entity per identifier.
package merge

import (
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
)

// Options configures a merge.
type Options struct {
	// Workers bounds how many identifier groups are folded at once.
	// Zero means GOMAXPROCS.
	Workers int
}

// WarningKind names a non-fatal merge anomaly.
type WarningKind string

const (
	WarnNameMismatch          WarningKind = "name_mismatch"
	WarnPathMismatch          WarningKind = "path_mismatch"
	WarnConflictingDefinition WarningKind = "conflicting_definition"
)

// Warning is an anomaly recorded against one identifier.
type Warning struct {
	Kind   WarningKind
	Detail string
	Symbol meta.SymbolID
}

// Failure is an identifier whose partial entities could not be merged.
type Failure struct {
	Err    error
	Symbol meta.SymbolID
}

// Result is the outcome of a merge.
type Result struct {
	Infos    []meta.Info // canonical entities, ordered by identifier
	Failures []Failure
	Warnings []Warning
}

type group struct {
	members  []meta.Info
	result   meta.Info
	err      error
	warnings []Warning
	id       meta.SymbolID
}

// Merge groups the entities of all units by identifier and folds each group.
// Units are processed in the order given, and so are the entities within a
// unit; singular fields keep the value seen first. The first partial entity
// of each group becomes the canonical one and is modified in place.
func Merge(units [][]meta.Info, opts Options) *Result {
	groups := groupByID(units)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, grp := range groups {
		g.Go(func() error {
			grp.result, grp.warnings, grp.err = fold(grp.id, grp.members)
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(groups, func(a, b *group) int {
		return a.id.Compare(b.id)
	})

	res := &Result{}
	for _, grp := range groups {
		res.Warnings = append(res.Warnings, grp.warnings...)
		if grp.err != nil {
			Logger().Warn("merge failed",
				zap.String("symbol", grp.id.String()),
				zap.Error(grp.err))
			res.Failures = append(res.Failures, Failure{Symbol: grp.id, Err: grp.err})
			continue
		}
		ComputeBriefs(grp.result)
		res.Infos = append(res.Infos, grp.result)
	}
	for _, w := range res.Warnings {
		Logger().Debug("merge anomaly",
			zap.String("symbol", w.Symbol.String()),
			zap.String("kind", string(w.Kind)),
			zap.String("detail", w.Detail))
	}
	Logger().Debug("merged corpus",
		zap.Int("units", len(units)),
		zap.Int("entities", len(res.Infos)),
		zap.Int("failures", len(res.Failures)),
		zap.Int("warnings", len(res.Warnings)))
	return res
}

// groupByID collects entities by identifier, keeping first-seen order both
// across groups and within each group.
func groupByID(units [][]meta.Info) []*group {
	var groups []*group
	index := make(map[meta.SymbolID]*group)
	for _, unit := range units {
		for _, info := range unit {
			if info == nil {
				continue
			}
			id := info.Common().ID
			grp, ok := index[id]
			if !ok {
				grp = &group{id: id}
				index[id] = grp
				groups = append(groups, grp)
			}
			grp.members = append(grp.members, info)
		}
	}
	return groups
}

// fold merges one group sequentially into its first member.
func fold(id meta.SymbolID, members []meta.Info) (meta.Info, []Warning, error) {
	first := members[0]
	for _, m := range members[1:] {
		if m.Kind() != first.Kind() {
			return nil, nil, errors.ConflictingEntityKind(id.String(), first.Kind().String(), m.Kind().String())
		}
	}

	f := &folder{id: id}
	for _, m := range members[1:] {
		if m == first {
			continue
		}
		f.info(first, m)
	}
	return first, f.warnings, nil
}
