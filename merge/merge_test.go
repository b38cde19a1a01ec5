package merge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/internal/fixture"
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/merge"
	"github.com/wippyai/doccorpus/meta"
)

func run(units ...[]meta.Info) *merge.Result {
	return merge.Merge(units, merge.Options{Workers: 2})
}

func TestMergeSingleUnitIsIdentity(t *testing.T) {
	want := fixture.Sample()
	for _, info := range want {
		merge.ComputeBriefs(info)
	}

	res := run(fixture.Sample())
	require.Empty(t, res.Failures)
	require.Empty(t, res.Warnings)
	require.Equal(t, want, res.Infos)
}

func TestMergeOrdersByIdentifier(t *testing.T) {
	res := run(
		[]meta.Info{fixture.Function(9, "c", ""), fixture.Function(3, "a", "")},
		[]meta.Info{fixture.Function(5, "b", "")},
	)
	require.Len(t, res.Infos, 3)
	names := make([]string, 0, len(res.Infos))
	for _, info := range res.Infos {
		names = append(names, info.Common().Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}

func TestMergeDeclarationAndDefinition(t *testing.T) {
	decl := fixture.Function(1, "draw", "app")
	decl.Loc = []meta.Location{{Filename: "draw.h", Line: 3}}
	decl.Doc = &javadoc.Javadoc{
		Blocks: []javadoc.Block{&javadoc.Paragraph{Children: fixture.Text("Longer text.")}},
	}

	def := fixture.Function(1, "draw", "app")
	def.DefLoc = &meta.Location{Filename: "draw.cc", Line: 40, IsDefinition: true}
	def.Loc = []meta.Location{{Filename: "draw.h", Line: 3}, {Filename: "other.h", Line: 7}}
	def.IsMethod = true
	def.ReturnType = &meta.TypeInfo{Type: fixture.TypeRef("void")}
	def.Doc = &javadoc.Javadoc{
		Blocks:  []javadoc.Block{&javadoc.Brief{Children: fixture.Text("Draws.")}},
		Returns: &javadoc.Returns{Children: fixture.Text("nothing")},
	}

	res := run([]meta.Info{decl}, []meta.Info{def})
	require.Empty(t, res.Failures)
	require.Empty(t, res.Warnings)
	require.Len(t, res.Infos, 1)

	got := res.Infos[0].(*meta.Function)
	require.Same(t, decl, got)
	require.Equal(t, def.DefLoc, got.DefLoc)
	require.Equal(t, []meta.Location{{Filename: "draw.h", Line: 3}, {Filename: "other.h", Line: 7}}, got.Loc)
	require.True(t, got.IsMethod)
	require.Equal(t, "void", got.ReturnType.Type.Name)
	require.Len(t, got.Doc.Blocks, 2)
	require.Equal(t, "Draws.", got.Doc.BriefText())
	require.Equal(t, "nothing", javadoc.PlainText(got.Doc.Returns.Children))
}

func TestMergeConflictingDefinitionKeepsFirst(t *testing.T) {
	a := fixture.Function(1, "f", "")
	a.DefLoc = &meta.Location{Filename: "a.cc", Line: 1, IsDefinition: true}
	b := fixture.Function(1, "f", "")
	b.DefLoc = &meta.Location{Filename: "b.cc", Line: 2, IsDefinition: true}

	res := run([]meta.Info{a}, []meta.Info{b})
	require.Len(t, res.Infos, 1)
	require.Equal(t, "a.cc", res.Infos[0].Common().DefLoc.Filename)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, merge.WarnConflictingDefinition, res.Warnings[0].Kind)
	require.Equal(t, fixture.ID(1), res.Warnings[0].Symbol)
}

func TestMergeNameAndPathMismatch(t *testing.T) {
	res := run(
		[]meta.Info{fixture.Record(1, "Widget", "app")},
		[]meta.Info{fixture.Record(1, "Gadget", "lib")},
	)
	require.Len(t, res.Infos, 1)
	require.Equal(t, "Widget", res.Infos[0].Common().Name)
	require.Equal(t, "app", res.Infos[0].Common().Path)

	kinds := []merge.WarningKind{res.Warnings[0].Kind, res.Warnings[1].Kind}
	require.ElementsMatch(t, []merge.WarningKind{merge.WarnNameMismatch, merge.WarnPathMismatch}, kinds)
}

func TestMergeAdoptsMissingName(t *testing.T) {
	a := &meta.Record{Base: meta.Base{ID: fixture.ID(1)}}
	res := run([]meta.Info{a}, []meta.Info{fixture.Record(1, "Widget", "app")})
	require.Empty(t, res.Warnings)
	require.Equal(t, "app::Widget", meta.QualifiedName(res.Infos[0]))
}

func TestMergeConflictingKind(t *testing.T) {
	res := run(
		[]meta.Info{fixture.Record(1, "X", ""), fixture.Function(2, "ok", "")},
		[]meta.Info{fixture.Function(1, "X", "")},
	)
	require.Len(t, res.Failures, 1)
	require.Equal(t, fixture.ID(1), res.Failures[0].Symbol)
	require.True(t, errors.Is(res.Failures[0].Err, errors.ErrConflictingEntityKind))
	require.Len(t, res.Infos, 1)
	require.Equal(t, "ok", res.Infos[0].Common().Name)
}

func TestMergeEnumerators(t *testing.T) {
	a := &meta.Enum{
		Base:    meta.Base{ID: fixture.ID(1), Name: "Color"},
		Members: []meta.EnumValue{{Name: "Red", Value: "0"}, {Name: "Blue", Value: "1"}},
	}
	b := &meta.Enum{
		Base:    meta.Base{ID: fixture.ID(1), Name: "Color"},
		Scoped:  true,
		Members: []meta.EnumValue{{Name: "Blue", Value: "1"}, {Name: "Green", Value: "2"}},
	}

	res := run([]meta.Info{a}, []meta.Info{b})
	got := res.Infos[0].(*meta.Enum)
	require.True(t, got.Scoped)
	require.Equal(t, []meta.EnumValue{
		{Name: "Red", Value: "0"},
		{Name: "Blue", Value: "1"},
		{Name: "Green", Value: "2"},
	}, got.Members)
}

func TestMergeOwnedChildrenFoldRecursively(t *testing.T) {
	color := func(file string, line int) *meta.Enum {
		return &meta.Enum{Base: meta.Base{
			ID:   fixture.ColorID,
			Name: "Color",
			Loc:  []meta.Location{{Filename: file, Line: line}},
		}}
	}
	a := &meta.Namespace{Base: meta.Base{ID: fixture.AppID, Name: "app"}}
	a.Children.Enums = []*meta.Enum{color("a.h", 1)}
	a.Children.Records = []meta.Reference{fixture.Ref(3, "Widget", "app", meta.KindRecord, meta.RelationChildRecord)}

	b := &meta.Namespace{Base: meta.Base{ID: fixture.AppID, Name: "app"}}
	b.Children.Enums = []*meta.Enum{color("b.h", 2), {Base: meta.Base{ID: fixture.ModeID, Name: "Mode"}}}
	b.Children.Records = []meta.Reference{
		fixture.Ref(3, "Widget", "app", meta.KindRecord, meta.RelationChildRecord),
		fixture.Ref(4, "Base", "app", meta.KindRecord, meta.RelationChildRecord),
	}
	b.Children.Typedefs = []*meta.Typedef{{Base: meta.Base{ID: fixture.SizeID, Name: "Size"}}}

	res := run([]meta.Info{a}, []meta.Info{b})
	got := res.Infos[0].(*meta.Namespace)
	require.Len(t, got.Children.Enums, 2)
	require.Equal(t, []meta.Location{{Filename: "a.h", Line: 1}, {Filename: "b.h", Line: 2}}, got.Children.Enums[0].Loc)
	require.Equal(t, "Mode", got.Children.Enums[1].Name)
	require.Len(t, got.Children.Typedefs, 1)
	require.Len(t, got.Children.Records, 2)
}

func TestMergeUnresolvedReferences(t *testing.T) {
	a := fixture.Record(1, "W", "")
	a.Parents = []meta.Reference{{Name: "Base", Path: "ext", Relation: meta.RelationParent}}
	b := fixture.Record(1, "W", "")
	b.Parents = []meta.Reference{
		{Name: "Base", Path: "ext", Relation: meta.RelationParent},
		{Name: "Other", Path: "ext", Relation: meta.RelationParent},
	}

	res := run([]meta.Info{a}, []meta.Info{b})
	got := res.Infos[0].(*meta.Record)
	require.Len(t, got.Parents, 2)
	require.Equal(t, "Other", got.Parents[1].Name)
}

func TestMergeMembers(t *testing.T) {
	member := meta.MemberType{FieldType: meta.FieldType{Name: "x", Type: fixture.TypeRef("int")}}
	documented := member
	documented.Doc = &javadoc.Javadoc{
		Blocks: []javadoc.Block{&javadoc.Paragraph{Children: fixture.Text("X coordinate.")}},
	}

	a := fixture.Record(1, "P", "")
	a.Members = []meta.MemberType{member}
	b := fixture.Record(1, "P", "")
	b.Members = []meta.MemberType{documented, {FieldType: meta.FieldType{Name: "y", Type: fixture.TypeRef("int")}}}

	res := run([]meta.Info{a}, []meta.Info{b})
	got := res.Infos[0].(*meta.Record)
	require.Len(t, got.Members, 2)
	require.Equal(t, "X coordinate.", got.Members[0].Doc.BriefText())
}

func TestMergeSameEntityTwice(t *testing.T) {
	f := fixture.Function(1, "f", "")
	f.Loc = []meta.Location{{Filename: "f.h", Line: 1}}
	f.Doc = &javadoc.Javadoc{Blocks: []javadoc.Block{&javadoc.Brief{Children: fixture.Text("F.")}}}

	res := run([]meta.Info{f}, []meta.Info{f})
	require.Len(t, res.Infos, 1)
	require.Len(t, f.Loc, 1)
	require.Len(t, f.Doc.Blocks, 1)
}

func TestMergeZeroIdentifierGroup(t *testing.T) {
	a := &meta.Namespace{Base: meta.Base{Loc: []meta.Location{{Filename: "a.h", Line: 1}}}}
	b := &meta.Namespace{Base: meta.Base{Loc: []meta.Location{{Filename: "b.h", Line: 1}}}}

	res := run([]meta.Info{a}, []meta.Info{b})
	require.Len(t, res.Infos, 1)
	require.True(t, res.Infos[0].Common().ID.IsZero())
	require.Len(t, res.Infos[0].Common().Loc, 2)
}

func TestMergeSetFieldsCommute(t *testing.T) {
	build := func() (*meta.Record, *meta.Record) {
		a := fixture.Record(1, "W", "")
		a.Loc = []meta.Location{{Filename: "a.h", Line: 1}}
		a.Parents = []meta.Reference{fixture.Ref(2, "A", "", meta.KindRecord, meta.RelationParent)}
		b := fixture.Record(1, "W", "")
		b.Loc = []meta.Location{{Filename: "b.h", Line: 2}, {Filename: "a.h", Line: 1}}
		b.Parents = []meta.Reference{fixture.Ref(3, "B", "", meta.KindRecord, meta.RelationParent)}
		return a, b
	}

	a, b := build()
	ab := run([]meta.Info{a}, []meta.Info{b}).Infos[0].(*meta.Record)
	a, b = build()
	ba := run([]meta.Info{b}, []meta.Info{a}).Infos[0].(*meta.Record)

	require.ElementsMatch(t, ab.Loc, ba.Loc)
	require.ElementsMatch(t, ab.Parents, ba.Parents)
}

func TestComputeBriefsNested(t *testing.T) {
	enum := &meta.Enum{Base: meta.Base{
		ID: fixture.ColorID,
		Doc: &javadoc.Javadoc{Blocks: []javadoc.Block{
			&javadoc.Paragraph{Children: fixture.Text("Colors.")},
		}},
	}}
	rec := fixture.Record(1, "W", "")
	rec.Children.Enums = []*meta.Enum{enum}

	merge.ComputeBriefs(rec)
	require.Equal(t, "Colors.", enum.Doc.BriefText())
	merge.ComputeBriefs(rec)
	require.Equal(t, "Colors.", enum.Doc.BriefText())
	merge.ComputeBriefs(nil)
}
