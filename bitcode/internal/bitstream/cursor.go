package bitstream

import (
	"encoding/binary"

	"github.com/wippyai/doccorpus/errors"
)

// Code is a structural token at the head of every stream element.
type Code uint32

const (
	CodeEndBlock       Code = 0
	CodeEnterSubblock  Code = 1
	CodeDefineAbbrev   Code = 2
	CodeUnabbrevRecord Code = 3
)

// MaxDepth bounds block nesting. Deeper streams are malformed.
const MaxDepth = 64

// Signature opens every container.
var Signature = [4]byte{'D', 'O', 'C', 'S'}

// Record is one leaf element: an id, integer fields and an optional blob.
type Record struct {
	Blob   []byte
	Fields []uint64
	ID     uint32
}

type frame struct {
	id  uint32
	end int
}

// Cursor reads the token stream of one container. It tracks the stack of
// entered blocks so that END_BLOCK tokens and declared block lengths are
// checked against each other.
type Cursor struct {
	data    []byte
	stack   []frame
	pending *frame
	pos     int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Reset rewinds the cursor onto new data, keeping its stack allocation.
func (c *Cursor) Reset(data []byte) {
	c.data = data
	c.stack = c.stack[:0]
	c.pending = nil
	c.pos = 0
}

// Position returns the current byte offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Depth returns the number of entered blocks.
func (c *Cursor) Depth() int {
	return len(c.stack)
}

// BlockID returns the id of the innermost entered block.
func (c *Cursor) BlockID() (uint32, bool) {
	if len(c.stack) == 0 {
		return 0, false
	}
	return c.stack[len(c.stack)-1].id, true
}

// AtEnd reports whether the stream or the innermost block has no bytes left.
func (c *Cursor) AtEnd() bool {
	return c.pos >= c.limit()
}

func (c *Cursor) limit() int {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1].end
	}
	return len(c.data)
}

// ReadSignature consumes and checks the 4-byte container signature.
func (c *Cursor) ReadSignature() error {
	if len(c.data)-c.pos < len(Signature) {
		return errors.BadSignature(c.data[c.pos:])
	}
	got := c.data[c.pos : c.pos+len(Signature)]
	if [4]byte(got) != Signature {
		return errors.BadSignature(got)
	}
	c.pos += len(Signature)
	return nil
}

// ReadCode reads the next structural token. An END_BLOCK token is validated
// and closes the innermost block before it is returned.
func (c *Cursor) ReadCode() (Code, error) {
	if c.pending != nil {
		return 0, errors.Malformed(c.pos, "block %d header read but neither entered nor skipped", c.pending.id)
	}
	start := c.pos
	v, err := c.readU32()
	if err != nil {
		return 0, err
	}
	code := Code(v)
	switch code {
	case CodeEndBlock:
		if len(c.stack) == 0 {
			return 0, errors.Malformed(start, "end of block without matching enter")
		}
		top := c.stack[len(c.stack)-1]
		if c.pos != top.end {
			return 0, errors.Malformed(start, "end of block %d at %d, declared end %d", top.id, c.pos, top.end)
		}
		c.stack = c.stack[:len(c.stack)-1]
		return code, nil
	case CodeEnterSubblock, CodeUnabbrevRecord:
		return code, nil
	case CodeDefineAbbrev:
		return 0, errors.Malformed(start, "abbreviations are not supported")
	default:
		return 0, errors.Malformed(start, "unknown code %d", v)
	}
}

// ReadBlockID reads the header following an ENTER_SUBBLOCK code. The caller
// must follow with EnterBlock or SkipBlock.
func (c *Cursor) ReadBlockID() (uint32, error) {
	start := c.pos
	id, err := c.readU32()
	if err != nil {
		return 0, err
	}
	length, err := c.readU32LE()
	if err != nil {
		return 0, err
	}
	end := c.pos + int(length)
	if end > c.limit() {
		return 0, errors.Malformed(start, "block %d length %d exceeds enclosing block", id, length)
	}
	c.pending = &frame{id: id, end: end}
	return id, nil
}

// EnterBlock opens the block whose header was just read.
func (c *Cursor) EnterBlock() error {
	if c.pending == nil {
		return errors.Malformed(c.pos, "enter without block header")
	}
	if len(c.stack) >= MaxDepth {
		return errors.Malformed(c.pos, "block %d nested deeper than %d", c.pending.id, MaxDepth)
	}
	c.stack = append(c.stack, *c.pending)
	c.pending = nil
	return nil
}

// SkipBlock jumps over the block whose header was just read.
func (c *Cursor) SkipBlock() error {
	if c.pending == nil {
		return errors.Malformed(c.pos, "skip without block header")
	}
	c.pos = c.pending.end
	c.pending = nil
	return nil
}

// Unwind closes every block entered at or below depth and moves the cursor
// past the end of the block that was opened at that depth.
func (c *Cursor) Unwind(depth int) {
	c.pending = nil
	if depth < 0 || depth >= len(c.stack) {
		return
	}
	c.pos = c.stack[depth].end
	c.stack = c.stack[:depth]
}

// ReadRecord reads the body following an UNABBREV_RECORD code.
func (c *Cursor) ReadRecord() (Record, error) {
	var rec Record
	id, err := c.readU32()
	if err != nil {
		return rec, err
	}
	rec.ID = id

	n, err := c.readU32()
	if err != nil {
		return rec, err
	}
	// every field takes at least one byte
	if int(n) > c.limit()-c.pos {
		return rec, errors.Malformed(c.pos, "record %d declares %d fields past end of block", id, n)
	}
	if n > 0 {
		rec.Fields = make([]uint64, n)
		for i := range rec.Fields {
			if rec.Fields[i], err = c.readU64(); err != nil {
				return rec, err
			}
		}
	}

	size, err := c.readU32()
	if err != nil {
		return rec, err
	}
	if int(size) > c.limit()-c.pos {
		return rec, errors.Malformed(c.pos, "record %d blob of %d bytes past end of block", id, size)
	}
	if size > 0 {
		rec.Blob = c.data[c.pos : c.pos+int(size)]
		c.pos += int(size)
	}
	return rec, nil
}

func (c *Cursor) readByte() (byte, error) {
	if c.pos >= c.limit() {
		return 0, errors.Malformed(c.pos, "unexpected end of data")
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *Cursor) readU32() (uint32, error) {
	start := c.pos
	var result uint32
	var shift uint
	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		if shift == 28 && b > 0x0f {
			return 0, overflow(start, "uint32")
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, errors.Malformed(start, "leb128 overflow")
		}
	}
}

func (c *Cursor) readU64() (uint64, error) {
	start := c.pos
	var result uint64
	var shift uint
	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b > 0x01 {
			return 0, overflow(start, "uint64")
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, errors.Malformed(start, "leb128 overflow")
		}
	}
}

func overflow(start int, target string) error {
	return errors.New(errors.PhaseDecode, errors.KindIntegerOverflow).
		Offset(start).
		Detail("leb128 value overflows %s", target).
		Build()
}

func (c *Cursor) readU32LE() (uint32, error) {
	if c.limit()-c.pos < 4 {
		return 0, errors.Malformed(c.pos, "truncated block length")
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}
