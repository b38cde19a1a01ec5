package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/doccorpus/corpus"
	"github.com/wippyai/doccorpus/internal/fixture"
	"github.com/wippyai/doccorpus/meta"
)

func TestCorpusLookup(t *testing.T) {
	c := corpus.New(fixture.Sample())
	require.Equal(t, 5, c.Len())

	w, ok := c.Get(fixture.WidgetID)
	require.True(t, ok)
	require.Equal(t, "Widget", w.Common().Name)

	color, ok := c.Get(fixture.ColorID)
	require.True(t, ok, "owned enum reachable by id")
	require.Equal(t, meta.KindEnum, color.Kind())

	_, ok = c.Get(fixture.ID(200))
	require.False(t, ok)

	for i := 1; i < c.Len(); i++ {
		require.Negative(t, c.Infos()[i-1].Common().ID.Compare(c.Infos()[i].Common().ID))
	}
}

func TestCorpusResolve(t *testing.T) {
	c := corpus.New(fixture.Sample())

	info, ok := c.Resolve(fixture.Ref(3, "Widget", "app", meta.KindRecord, meta.RelationType))
	require.True(t, ok)
	require.Equal(t, fixture.WidgetID, info.Common().ID)

	// dangling: Base and Shape are referenced but never defined
	info, ok = c.Resolve(fixture.Ref(4, "Base", "app", meta.KindRecord, meta.RelationParent))
	require.False(t, ok)
	require.Nil(t, info)

	_, ok = c.Resolve(fixture.Ref(3, "Widget", "app", meta.KindFunction, meta.RelationType))
	require.False(t, ok, "kind must agree")
}

func TestCorpusKeepsFirstDuplicate(t *testing.T) {
	c := corpus.New([]meta.Info{fixture.Function(1, "a", ""), fixture.Function(1, "b", "")})
	require.Equal(t, 1, c.Len())
	require.Equal(t, "a", c.Infos()[0].Common().Name)
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		less bool
	}{
		{"apple", "Banana", true},
		{"Banana", "apple", false},
		{"string", "stRing", true},
		{"stRing", "string", false},
		{"abc", "ABCD", true},
		{"ABCD", "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			require.Equal(t, tt.less, corpus.CompareNames(tt.a, tt.b) < 0)
		})
	}
	require.Zero(t, corpus.CompareNames("same", "same"))
}

func TestAllSymbols(t *testing.T) {
	c := corpus.New(fixture.Sample())
	got := c.AllSymbols()

	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		"app",
		"app::Color",
		"app::Handle",
		"app::Size",
		"app::Widget",
		"app::Widget::draw",
		"Mode",
	}, names)
	require.Equal(t, meta.KindEnum, got[1].Kind)
}

func TestResolveUnidentified(t *testing.T) {
	global := &meta.Namespace{}
	c := corpus.New([]meta.Info{global})

	got, ok := c.Get(meta.ZeroID)
	require.True(t, ok)
	require.Same(t, global, got)

	_, ok = c.Resolve(fixture.TypeRef("int"))
	require.False(t, ok)
}
