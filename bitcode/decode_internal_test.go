package bitcode

import (
	"testing"

	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
)

// A failing sub-block must leave the cursor after its end so that sibling
// blocks can still be read.
func TestFailedSubBlockResyncsCursor(t *testing.T) {
	w := bitstream.NewWriter()
	w.EnterBlock(uint32(BlockRecord))
	w.EnterBlock(uint32(BlockMemberType))
	w.WriteRecord(uint32(MemberTypeAccess), []uint64{42}, nil)
	w.WriteRecord(uint32(MemberTypeName), nil, []byte("unread"))
	w.EndBlock()
	w.EnterBlock(uint32(BlockMemberType))
	w.WriteRecord(uint32(MemberTypeName), nil, []byte("sibling"))
	w.EndBlock()
	w.EndBlock()

	c := bitstream.NewCursor(w.Bytes())
	d := &decoder{c: c, version: Version}
	mustEnter(t, c)

	owner := &meta.Record{}
	readChild := func() error {
		start := c.Position()
		if code, err := c.ReadCode(); err != nil || code != bitstream.CodeEnterSubblock {
			t.Fatalf("ReadCode = %v, %v", code, err)
		}
		id, err := c.ReadBlockID()
		if err != nil {
			t.Fatal(err)
		}
		return d.readSubBlock(owner, BlockID(id), start)
	}

	if err := readChild(); !errors.Is(err, errors.ErrInvalidEnumValue) {
		t.Fatalf("first member: got %v, want invalid enum value", err)
	}
	if c.Depth() != 1 {
		t.Fatalf("depth after failure = %d, want 1", c.Depth())
	}
	if err := readChild(); err != nil {
		t.Fatalf("sibling member: %v", err)
	}
	if len(owner.Members) != 1 || owner.Members[0].Name != "sibling" {
		t.Errorf("members = %+v", owner.Members)
	}
	if code, err := c.ReadCode(); err != nil || code != bitstream.CodeEndBlock {
		t.Fatalf("closing record block: %v, %v", code, err)
	}
}

func TestAttachTable(t *testing.T) {
	tests := []struct {
		owner any
		child any
		ok    bool
	}{
		{&meta.Namespace{}, &meta.Enum{}, true},
		{&meta.Namespace{}, &meta.Reference{Relation: meta.RelationChildNamespace}, true},
		{&meta.Namespace{}, &meta.Reference{Relation: meta.RelationParent}, false},
		{&meta.Namespace{}, &meta.Template{}, false},
		{&meta.Record{}, &meta.Reference{Relation: meta.RelationVirtualParent}, true},
		{&meta.Record{}, &meta.Reference{Relation: meta.RelationChildNamespace}, false},
		{&meta.Record{}, &meta.BaseRecord{}, true},
		{&meta.BaseRecord{}, &meta.MemberType{}, true},
		{&meta.BaseRecord{}, &meta.Reference{Relation: meta.RelationType}, false},
		{&meta.Function{}, &meta.FieldType{}, true},
		{&meta.Function{}, &meta.Reference{Relation: meta.RelationParent}, true},
		{&meta.Function{}, &meta.MemberType{}, false},
		{&meta.Enum{}, &meta.EnumValue{}, true},
		{&meta.Enum{}, &meta.FieldType{}, false},
		{&meta.Typedef{}, &meta.TypeInfo{}, true},
		{&meta.Typedef{}, &meta.Enum{}, false},
		{&meta.TypeInfo{}, &meta.Reference{Relation: meta.RelationType}, true},
		{&meta.TypeInfo{}, &meta.Reference{Relation: meta.RelationNamespace}, false},
		{&meta.Template{}, &meta.TemplateSpecialization{}, true},
		{&meta.TemplateSpecialization{}, &meta.TemplateParam{}, true},
		{&meta.TemplateSpecialization{}, &meta.Template{}, false},
		{&meta.EnumValue{}, &meta.Reference{}, false},
	}

	for _, tt := range tests {
		name := valueName(tt.child) + " in " + valueName(tt.owner)
		t.Run(name, func(t *testing.T) {
			err := attach(tt.owner, tt.child)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrInvalidAttachment) {
				t.Fatalf("got %v, want invalid attachment", err)
			}
		})
	}
}

func mustEnter(t *testing.T, c *bitstream.Cursor) {
	t.Helper()
	if _, err := c.ReadCode(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ReadBlockID(); err != nil {
		t.Fatal(err)
	}
	if err := c.EnterBlock(); err != nil {
		t.Fatal(err)
	}
}
