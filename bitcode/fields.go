package bitcode

import (
	"math"

	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
)

// enumValue is satisfied by the discriminated enums of the model.
type enumValue interface {
	~uint32
	Valid() bool
	String() string
}

func needFields(rec bitstream.Record, n int) error {
	if len(rec.Fields) < n {
		return errors.New(errors.PhaseDecode, errors.KindMalformedStream).
			Value(rec.ID).
			Detail("record %d has %d fields, want %d", rec.ID, len(rec.Fields), n).
			Build()
	}
	return nil
}

func decodeBool(rec bitstream.Record, out *bool) error {
	if err := needFields(rec, 1); err != nil {
		return err
	}
	*out = rec.Fields[0] != 0
	return nil
}

func decodeInt(rec bitstream.Record, field string, out *int) error {
	if err := needFields(rec, 1); err != nil {
		return err
	}
	v := rec.Fields[0]
	if v > math.MaxInt32 {
		return errors.IntegerOverflow([]string{field}, v, "int32")
	}
	*out = int(v)
	return nil
}

func decodeString(rec bitstream.Record, out *string) error {
	*out = string(rec.Blob)
	return nil
}

func decodeEnum[T enumValue](rec bitstream.Record, field string, out *T) error {
	if err := needFields(rec, 1); err != nil {
		return err
	}
	v := rec.Fields[0]
	if v > math.MaxUint32 || !T(v).Valid() {
		return errors.InvalidEnumValue([]string{field}, v, field)
	}
	*out = T(v)
	return nil
}

// decodeSymbolID accepts the declared length in fields[0] with the bytes in
// the blob, or the older form with one byte per field after the length.
func decodeSymbolID(rec bitstream.Record, out *meta.SymbolID) error {
	if err := needFields(rec, 1); err != nil {
		return err
	}
	if n := rec.Fields[0]; n != meta.SymbolIDSize {
		return errors.BadIdentifierLength([]string{"usr"}, int(min(n, math.MaxInt32)), meta.SymbolIDSize)
	}
	switch {
	case len(rec.Blob) == meta.SymbolIDSize && len(rec.Fields) == 1:
		copy(out[:], rec.Blob)
	case len(rec.Blob) == 0 && len(rec.Fields) == meta.SymbolIDSize+1:
		for i, f := range rec.Fields[1:] {
			if f > math.MaxUint8 {
				return errors.IntegerOverflow([]string{"usr"}, f, "byte")
			}
			out[i] = byte(f)
		}
	default:
		got := len(rec.Blob)
		if got == 0 {
			got = len(rec.Fields) - 1
		}
		return errors.BadIdentifierLength([]string{"usr"}, got, meta.SymbolIDSize)
	}
	return nil
}

// decodeLocation reads fields [line, isDefinition] and the filename blob.
func decodeLocation(rec bitstream.Record, out *meta.Location) error {
	if err := needFields(rec, 2); err != nil {
		return err
	}
	var loc meta.Location
	if err := decodeInt(rec, "line", &loc.Line); err != nil {
		return err
	}
	loc.IsDefinition = rec.Fields[1] != 0
	loc.Filename = string(rec.Blob)
	*out = loc
	return nil
}
