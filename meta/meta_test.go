package meta

import (
	"strings"
	"testing"
)

func TestSymbolID(t *testing.T) {
	var id SymbolID
	if !id.IsZero() {
		t.Fatal("zero id should report IsZero")
	}
	id[0] = 0xab
	id[19] = 0x01
	s := id.String()
	if len(s) != 40 || !strings.HasPrefix(s, "ab") || !strings.HasSuffix(s, "01") {
		t.Fatalf("String = %q", s)
	}

	parsed, err := ParseSymbolID(s)
	if err != nil {
		t.Fatalf("ParseSymbolID: %v", err)
	}
	if parsed != id {
		t.Errorf("parsed = %v, want %v", parsed, id)
	}

	if _, err := ParseSymbolID("abc"); err == nil {
		t.Error("short id should fail")
	}
	if _, err := ParseSymbolID(strings.Repeat("zz", 20)); err == nil {
		t.Error("non-hex id should fail")
	}
}

func TestSymbolIDCompare(t *testing.T) {
	a := SymbolID{1}
	b := SymbolID{2}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Error("Compare should order byte-wise")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{KindRecord.String(), "record"},
		{InfoKind(9).String(), "unknown"},
		{RelationVirtualParent.String(), "vparent"},
		{RelationChildFunction.String(), "child_function"},
		{AccessNone.String(), "none"},
		{TagInterface.String(), "interface"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
	if InfoKind(6).Valid() || Relation(8).Valid() || Access(4).Valid() || TagType(5).Valid() {
		t.Error("out-of-range discriminants must be invalid")
	}
}

func TestQualifiedName(t *testing.T) {
	f := &Function{Base: Base{Name: "run", Path: "app::detail"}}
	if got := QualifiedName(f); got != "app::detail::run" {
		t.Errorf("QualifiedName = %q", got)
	}
	g := &Function{Base: Base{Name: "main"}}
	if got := QualifiedName(g); got != "main" {
		t.Errorf("QualifiedName = %q", got)
	}
}

func TestJoinPath(t *testing.T) {
	got := JoinPath([]Reference{{Name: "inner"}, {Name: "outer"}})
	if got != "outer::inner" {
		t.Errorf("JoinPath = %q", got)
	}
}

func TestNewInfo(t *testing.T) {
	for _, k := range []InfoKind{KindNamespace, KindRecord, KindFunction, KindEnum, KindTypedef} {
		info := NewInfo(k)
		if info == nil || info.Kind() != k {
			t.Errorf("NewInfo(%v) = %v", k, info)
		}
	}
	if NewInfo(KindDefault) != nil {
		t.Error("default kind has no entity")
	}
}

func TestParseInfoKind(t *testing.T) {
	for k := KindNamespace; k <= KindTypedef; k++ {
		got, ok := ParseInfoKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseInfoKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseInfoKind("default"); ok {
		t.Error("default is not a parseable kind")
	}
	if _, ok := ParseInfoKind("class"); ok {
		t.Error("unknown name parsed")
	}
}
