package bitstream

import (
	"bytes"
	"encoding/binary"
)

// Writer produces the token stream read by Cursor. Block lengths are
// back-patched when the block is closed.
type Writer struct {
	buf  *bytes.Buffer
	open []int // offsets of unpatched length fields
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Depth returns the number of blocks not yet closed.
func (w *Writer) Depth() int {
	return len(w.open)
}

// WriteSignature writes the container signature.
func (w *Writer) WriteSignature() {
	w.buf.Write(Signature[:])
}

// EnterBlock opens a block with a placeholder length.
func (w *Writer) EnterBlock(id uint32) {
	w.WriteCode(CodeEnterSubblock)
	w.WriteU32(id)
	w.open = append(w.open, w.buf.Len())
	w.WriteU32LE(0)
}

// EndBlock closes the innermost block and patches its length.
func (w *Writer) EndBlock() {
	if len(w.open) == 0 {
		return
	}
	w.WriteCode(CodeEndBlock)
	off := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	binary.LittleEndian.PutUint32(w.buf.Bytes()[off:], uint32(w.buf.Len()-off-4))
}

// WriteRecord writes an unabbreviated record.
func (w *Writer) WriteRecord(id uint32, fields []uint64, blob []byte) {
	w.WriteCode(CodeUnabbrevRecord)
	w.WriteU32(id)
	w.WriteU32(uint32(len(fields)))
	for _, f := range fields {
		w.WriteU64(f)
	}
	w.WriteU32(uint32(len(blob)))
	w.buf.Write(blob)
}

// WriteCode writes a structural token.
func (w *Writer) WriteCode(c Code) {
	w.WriteU32(uint32(c))
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU32 writes an unsigned LEB128 encoded uint32.
func (w *Writer) WriteU32(v uint32) {
	w.WriteU64(uint64(v))
}

// WriteU64 writes an unsigned LEB128 encoded uint64.
func (w *Writer) WriteU64(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// WriteU32LE writes a little-endian uint32 (fixed 4 bytes).
func (w *Writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}
