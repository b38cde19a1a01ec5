package bitcode

import (
	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/meta"
)

// decoder holds the state of one container decode.
type decoder struct {
	c       *bitstream.Cursor
	version uint64
}

// newChild allocates the value a nested block decodes into. Javadoc blocks
// are handled separately; nil means the id has no decodable form.
func newChild(id BlockID) any {
	switch id {
	case BlockNamespace:
		return &meta.Namespace{}
	case BlockRecord:
		return &meta.Record{}
	case BlockFunction:
		return &meta.Function{}
	case BlockEnum:
		return &meta.Enum{}
	case BlockTypedef:
		return &meta.Typedef{}
	case BlockEnumValue:
		return &meta.EnumValue{}
	case BlockType:
		return &meta.TypeInfo{}
	case BlockFieldType:
		return &meta.FieldType{}
	case BlockMemberType:
		return &meta.MemberType{}
	case BlockBaseRecord:
		return &meta.BaseRecord{}
	case BlockReference:
		return &meta.Reference{}
	case BlockTemplate:
		return &meta.Template{}
	case BlockTemplateSpecialization:
		return &meta.TemplateSpecialization{}
	case BlockTemplateParam:
		return &meta.TemplateParam{}
	}
	return nil
}

// readBlock decodes the records and sub-blocks of the block just entered
// into owner, until its END_BLOCK.
func (d *decoder) readBlock(owner any) error {
	for {
		start := d.c.Position()
		code, err := d.c.ReadCode()
		if err != nil {
			return err
		}
		switch code {
		case bitstream.CodeEndBlock:
			return nil
		case bitstream.CodeEnterSubblock:
			id, err := d.c.ReadBlockID()
			if err != nil {
				return err
			}
			if err := d.readSubBlock(owner, BlockID(id), start); err != nil {
				return err
			}
		case bitstream.CodeUnabbrevRecord:
			rec, err := d.c.ReadRecord()
			if err != nil {
				return err
			}
			if err := parseRecord(owner, rec); err != nil {
				return withOffset(err, start)
			}
		}
	}
}

// readSubBlock decodes one nested block and attaches it to owner.
func (d *decoder) readSubBlock(owner any, id BlockID, start int) error {
	if id == BlockJavadoc {
		var doc *javadoc.Javadoc
		if err := d.nested(id, func() (err error) {
			doc, err = d.readJavadoc()
			return err
		}); err != nil {
			return err
		}
		return inBlock(withOffset(attach(owner, doc), start), id)
	}

	child := newChild(id)
	if child == nil {
		return d.skipUnexpected(valueName(owner), id, start)
	}
	if err := d.nested(id, func() error { return d.readBlock(child) }); err != nil {
		return err
	}
	return inBlock(withOffset(attach(owner, child), start), id)
}

// nested enters the block whose header was just read and runs read inside
// it. On failure the cursor is moved past the end of the block so the
// enclosing stream stays in sync, and the block name is added to the path.
func (d *decoder) nested(id BlockID, read func() error) error {
	depth := d.c.Depth()
	if err := d.c.EnterBlock(); err != nil {
		return err
	}
	if err := read(); err != nil {
		d.c.Unwind(depth)
		return inBlock(err, id)
	}
	return nil
}

// skipUnexpected skips a sub-block that owner cannot hold.
func (d *decoder) skipUnexpected(owner string, id BlockID, start int) error {
	if err := d.c.SkipBlock(); err != nil {
		return err
	}
	return withOffset(errors.InvalidAttachment(owner, id.String()), start)
}

func withOffset(err error, off int) error {
	if e, ok := errors.As(err); ok && !e.HasOffset {
		e.Offset = off
		e.HasOffset = true
	}
	return err
}

func inBlock(err error, id BlockID) error {
	if e, ok := errors.As(err); ok {
		e.Path = append([]string{id.String()}, e.Path...)
	}
	return err
}
