package merge

import (
	"fmt"

	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/meta"
)

// folder accumulates the anomalies of one group's fold.
type folder struct {
	warnings []Warning
	id       meta.SymbolID
}

func (f *folder) warn(kind WarningKind, format string, args ...any) {
	f.warnings = append(f.warnings, Warning{
		Symbol: f.id,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	})
}

// info folds src into dst; both have the same kind.
func (f *folder) info(dst, src meta.Info) {
	f.base(dst.Common(), src.Common())
	switch d := dst.(type) {
	case *meta.Namespace:
		s := src.(*meta.Namespace)
		f.scope(&d.Children, &s.Children)
	case *meta.Record:
		f.record(d, src.(*meta.Record))
	case *meta.Function:
		f.function(d, src.(*meta.Function))
	case *meta.Enum:
		f.enum(d, src.(*meta.Enum))
	case *meta.Typedef:
		f.typedef(d, src.(*meta.Typedef))
	}
}

func (f *folder) base(dst, src *meta.Base) {
	switch {
	case dst.Name == "":
		dst.Name = src.Name
	case src.Name != "" && src.Name != dst.Name:
		f.warn(WarnNameMismatch, "name %q kept, %q dropped", dst.Name, src.Name)
	}
	switch {
	case dst.Path == "":
		dst.Path = src.Path
	case src.Path != "" && src.Path != dst.Path:
		f.warn(WarnPathMismatch, "path %q kept, %q dropped", dst.Path, src.Path)
	}

	if len(dst.Namespace) == 0 {
		dst.Namespace = src.Namespace
	}

	dst.Loc = mergeLocations(dst.Loc, src.Loc)
	switch {
	case dst.DefLoc == nil:
		dst.DefLoc = src.DefLoc
	case src.DefLoc != nil && !sameSpot(*dst.DefLoc, *src.DefLoc):
		f.warn(WarnConflictingDefinition, "definition at %s:%d kept, %s:%d dropped",
			dst.DefLoc.Filename, dst.DefLoc.Line, src.DefLoc.Filename, src.DefLoc.Line)
	}

	dst.Doc = mergeDoc(dst.Doc, src.Doc)
}

func mergeDoc(dst, src *javadoc.Javadoc) *javadoc.Javadoc {
	if dst == nil {
		return src
	}
	dst.Merge(src)
	return dst
}

func sameSpot(a, b meta.Location) bool {
	return a.Filename == b.Filename && a.Line == b.Line
}

func mergeLocations(dst, src []meta.Location) []meta.Location {
	for _, loc := range src {
		dup := false
		for _, have := range dst {
			if sameSpot(have, loc) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, loc)
		}
	}
	return dst
}

func (f *folder) record(dst, src *meta.Record) {
	dst.IsTypedef = dst.IsTypedef || src.IsTypedef
	dst.Members = mergeMembers(dst.Members, src.Members)
	dst.Parents = mergeRefs(dst.Parents, src.Parents)
	dst.VirtualParents = mergeRefs(dst.VirtualParents, src.VirtualParents)
	dst.Bases = mergeBases(dst.Bases, src.Bases)
	dst.Template = mergeTemplate(dst.Template, src.Template)
	f.scope(&dst.Children, &src.Children)
}

func (f *folder) function(dst, src *meta.Function) {
	dst.IsMethod = dst.IsMethod || src.IsMethod
	if dst.Parent == nil {
		dst.Parent = src.Parent
	}
	if dst.ReturnType == nil {
		dst.ReturnType = src.ReturnType
	}
	if len(dst.Params) == 0 {
		dst.Params = src.Params
	}
	dst.Template = mergeTemplate(dst.Template, src.Template)
}

func (f *folder) enum(dst, src *meta.Enum) {
	dst.Scoped = dst.Scoped || src.Scoped
	if dst.BaseType == nil {
		dst.BaseType = src.BaseType
	}
	dst.Members = appendUnique(dst.Members, src.Members)
}

func (f *folder) typedef(dst, src *meta.Typedef) {
	dst.IsAlias = dst.IsAlias || src.IsAlias
	if dst.Underlying == nil {
		dst.Underlying = src.Underlying
	}
}

func (f *folder) scope(dst, src *meta.Scope) {
	dst.Namespaces = mergeRefs(dst.Namespaces, src.Namespaces)
	dst.Records = mergeRefs(dst.Records, src.Records)
	dst.Functions = mergeRefs(dst.Functions, src.Functions)
	dst.Enums = mergeOwned(f, dst.Enums, src.Enums)
	dst.Typedefs = mergeOwned(f, dst.Typedefs, src.Typedefs)
}

// mergeOwned folds owned children with a shared identifier into the first
// occurrence and appends the rest.
func mergeOwned[T meta.Info](f *folder, dst, src []T) []T {
	n := len(dst)
	for _, s := range src {
		id := s.Common().ID
		at := -1
		if !id.IsZero() {
			for i := range dst[:n] {
				if dst[i].Common().ID == id {
					at = i
					break
				}
			}
		}
		if at < 0 {
			dst = append(dst, s)
			continue
		}
		if meta.Info(dst[at]) == meta.Info(s) {
			continue
		}
		child := &folder{id: id}
		child.info(dst[at], s)
		f.warnings = append(f.warnings, child.warnings...)
	}
	return dst
}

// refKey identifies a reference: by identifier, or by name and path when
// the target is unresolved.
type refKey struct {
	name, path string
	id         meta.SymbolID
}

func keyOf(r meta.Reference) refKey {
	if r.ID.IsZero() {
		return refKey{name: r.Name, path: r.Path}
	}
	return refKey{id: r.ID}
}

func mergeRefs(dst, src []meta.Reference) []meta.Reference {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[refKey]struct{}, len(dst)+len(src))
	for _, r := range dst {
		seen[keyOf(r)] = struct{}{}
	}
	for _, r := range src {
		k := keyOf(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		dst = append(dst, r)
	}
	return dst
}

func mergeBases(dst, src []meta.BaseRecord) []meta.BaseRecord {
	for _, b := range src {
		k := keyOf(meta.Reference{ID: b.ID, Name: b.Name, Path: b.Path})
		dup := false
		for _, have := range dst {
			if keyOf(meta.Reference{ID: have.ID, Name: have.Name, Path: have.Path}) == k {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, b)
		}
	}
	return dst
}

type memberKey struct {
	name   string
	typ    refKey
	access meta.Access
}

// mergeMembers drops members identical in name, type and access; a kept
// member adopts the comment of a dropped duplicate when it has none.
func mergeMembers(dst, src []meta.MemberType) []meta.MemberType {
	for _, m := range src {
		k := memberKey{name: m.Name, typ: keyOf(m.Type), access: m.Access}
		dup := -1
		for i, have := range dst {
			if (memberKey{name: have.Name, typ: keyOf(have.Type), access: have.Access}) == k {
				dup = i
				break
			}
		}
		if dup < 0 {
			dst = append(dst, m)
			continue
		}
		if dst[dup].Doc == nil {
			dst[dup].Doc = m.Doc
		}
	}
	return dst
}

func mergeTemplate(dst, src *meta.Template) *meta.Template {
	if dst == nil {
		return src
	}
	if src == nil || dst == src {
		return dst
	}
	dst.Params = appendUnique(dst.Params, src.Params)
	if dst.Specialization == nil {
		dst.Specialization = src.Specialization
	}
	return dst
}

// appendUnique appends the elements of src not already in dst.
func appendUnique[T comparable](dst, src []T) []T {
	for _, v := range src {
		dup := false
		for _, have := range dst {
			if have == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
