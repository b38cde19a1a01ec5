package meta

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// SymbolIDSize is the width of an identifier in bytes.
const SymbolIDSize = 20

// SymbolID is a fixed-width hash naming one source symbol.
// The zero value means "no symbol".
type SymbolID [SymbolIDSize]byte

// ZeroID is the empty identifier.
var ZeroID SymbolID

// IsZero reports whether id is the empty identifier.
func (id SymbolID) IsZero() bool {
	return id == ZeroID
}

// String returns the lower-case hex form.
func (id SymbolID) String() string {
	return hex.EncodeToString(id[:])
}

// Compare orders identifiers byte-wise.
func (id SymbolID) Compare(other SymbolID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id SymbolID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SymbolID) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbolID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseSymbolID parses the hex form produced by String.
func ParseSymbolID(s string) (SymbolID, error) {
	var id SymbolID
	if len(s) != 2*SymbolIDSize {
		return id, fmt.Errorf("symbol id %q: want %d hex digits", s, 2*SymbolIDSize)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("symbol id %q: %w", s, err)
	}
	return id, nil
}
