package javadoc

import "testing"

func para(s string) *Paragraph { return &Paragraph{Children: []Inline{&Text{String: s}}} }
func brief(s string) *Brief    { return &Brief{Children: []Inline{&Text{String: s}}} }

func TestCalculateBrief(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		want   string
		none   bool
	}{
		{"brief wins over earlier paragraph", []Block{para("x"), brief("y")}, "y", false},
		{"first paragraph without brief", []Block{para("x")}, "x", false},
		{"first of several paragraphs", []Block{para("a"), &Code{Children: []Inline{&Text{String: "b"}}}}, "a", false},
		{"no blocks", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Javadoc{Blocks: tt.blocks}
			d.CalculateBrief()
			if tt.none {
				if d.Brief() != nil {
					t.Fatalf("brief = %v, want none", d.Brief())
				}
				return
			}
			if got := d.BriefText(); got != tt.want {
				t.Errorf("brief = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculateBriefIdempotent(t *testing.T) {
	d := &Javadoc{Blocks: []Block{para("x"), brief("y")}}
	d.CalculateBrief()
	first := d.Brief()
	d.CalculateBrief()
	if d.Brief() != first {
		t.Error("second computation picked a different block")
	}
}

func TestBriefNilJavadoc(t *testing.T) {
	var d *Javadoc
	if d.Brief() != nil || d.BriefText() != "" {
		t.Error("nil javadoc should have no brief")
	}
	if !d.Empty() {
		t.Error("nil javadoc should be empty")
	}
}

func TestMerge(t *testing.T) {
	a := &Javadoc{
		Blocks: []Block{para("a")},
		Params: []*Param{{Name: "x"}},
	}
	b := &Javadoc{
		Blocks:  []Block{brief("b")},
		Params:  []*Param{{Name: "y"}},
		TParams: []*TParam{{Name: "T"}},
		Returns: &Returns{Children: []Inline{&Text{String: "r"}}},
	}
	a.Merge(b)

	if len(a.Blocks) != 2 || a.Blocks[0].Kind() != KindParagraph || a.Blocks[1].Kind() != KindBrief {
		t.Errorf("blocks = %v", a.Blocks)
	}
	if len(a.Params) != 2 || a.Params[0].Name != "x" || a.Params[1].Name != "y" {
		t.Errorf("params = %v", a.Params)
	}
	if len(a.TParams) != 1 {
		t.Errorf("tparams = %v", a.TParams)
	}
	if a.Returns != b.Returns {
		t.Error("returns should be adopted from the other comment")
	}
}

func TestMergeReturns(t *testing.T) {
	full := func(s string) *Returns { return &Returns{Children: []Inline{&Text{String: s}}} }

	tests := []struct {
		name  string
		first *Returns
		other *Returns
		want  string
		none  bool
	}{
		{"first non-empty wins", full("one"), full("two"), "one", false},
		{"empty first replaced", &Returns{}, full("two"), "two", false},
		{"absent first replaced", nil, full("two"), "two", false},
		{"all empty is absent", &Returns{}, &Returns{}, "", true},
		{"absent and empty is absent", nil, &Returns{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Javadoc{Returns: tt.first}
			d.Merge(&Javadoc{Returns: tt.other})
			if tt.none {
				if d.Returns != nil {
					t.Fatalf("returns = %+v, want absent", d.Returns)
				}
				return
			}
			if got := PlainText(d.Returns.Children); got != tt.want {
				t.Errorf("returns = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	if KindBlock.Valid() {
		t.Error("abstract block kind must not be valid")
	}
	if NodeKind(0).Valid() || NodeKind(11).Valid() {
		t.Error("out of range kinds must not be valid")
	}
	if !KindReturns.Valid() || KindReturns.String() != "returns" {
		t.Error("returns kind")
	}
	if !StyleItalic.Valid() || Style(5).Valid() || Style(0).Valid() {
		t.Error("style range")
	}
	if !AdmonishWarning.Valid() || Admonish(7).Valid() {
		t.Error("admonish range")
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText([]Inline{&Text{String: "a "}, &StyledText{String: "b", Style: StyleBold}})
	if got != "a b" {
		t.Errorf("PlainText = %q", got)
	}
}
