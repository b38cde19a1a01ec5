package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseDecode,
				Kind:      KindInvalidEnumValue,
				Path:      []string{"record", "tag_type"},
				Unit:      "a.docs",
				Symbol:    "0a0b",
				Offset:    17,
				HasOffset: true,
				Detail:    "bad tag",
			},
			contains: []string{"[decode]", "invalid_enum_value", "record.tag_type", "offset 17", "a.docs", "0a0b", "bad tag"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseMerge,
				Kind:  KindConflictingEntityKind,
			},
			contains: []string{"[merge]", "conflicting_entity_kind"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStore,
				Kind:   KindIO,
				Detail: "open db",
				Cause:  errors.New("disk gone"),
			},
			contains: []string{"[store]", "io", "open db", "caused by", "disk gone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoOffsetWhenUnset(t *testing.T) {
	err := &Error{Phase: PhaseDecode, Kind: KindMalformedStream}
	if strings.Contains(err.Error(), "offset") {
		t.Errorf("unexpected offset in %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseBuild,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindVersionMismatch,
		Path:  []string{"version"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindVersionMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseMerge, Kind: KindVersionMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindBadSignature}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrVersionMismatch) {
		t.Error("kind sentinel should match regardless of phase")
	}
	if errors.Is(err, ErrBadSignature) {
		t.Error("kind sentinel of another kind should not match")
	}

	wrapped := fmt.Errorf("unit a.docs: %w", err)
	if !errors.Is(wrapped, ErrVersionMismatch) {
		t.Error("sentinel should match through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindIntegerOverflow).
		Path("location", "line").
		Unit("u.docs").
		Symbol("ff").
		Offset(99).
		Value(uint64(1<<40)).
		Cause(cause).
		Detail("line %d too large", 1<<40).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindIntegerOverflow {
		t.Errorf("Kind = %v, want %v", err.Kind, KindIntegerOverflow)
	}
	if len(err.Path) != 2 || err.Path[0] != "location" || err.Path[1] != "line" {
		t.Errorf("Path = %v, want [location line]", err.Path)
	}
	if err.Unit != "u.docs" || err.Symbol != "ff" {
		t.Errorf("Unit=%q Symbol=%q", err.Unit, err.Symbol)
	}
	if !err.HasOffset || err.Offset != 99 {
		t.Errorf("Offset = %d (set %v), want 99", err.Offset, err.HasOffset)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "line 1099511627776 too large" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"BadSignature", BadSignature([]byte("XXXX")), KindBadSignature},
		{"VersionMismatch", VersionMismatch(4, 3), KindVersionMismatch},
		{"Malformed", Malformed(10, "truncated %s", "record"), KindMalformedStream},
		{"InvalidTopLevelBlock", InvalidTopLevelBlock("javadoc", 4), KindInvalidTopLevelBlock},
		{"InvalidAttachment", InvalidAttachment("enum", "template"), KindInvalidAttachment},
		{"InvalidEnumValue", InvalidEnumValue([]string{"access"}, 9, "access"), KindInvalidEnumValue},
		{"IntegerOverflow", IntegerOverflow(nil, 1<<33, "int32"), KindIntegerOverflow},
		{"BadIdentifierLength", BadIdentifierLength(nil, 19, 20), KindBadIdentifierLength},
		{"TooManyReturns", TooManyReturns(nil), KindTooManyReturnsNodes},
		{"ConflictingEntityKind", ConflictingEntityKind("ab", "record", "function"), KindConflictingEntityKind},
		{"NotFound", NotFound(PhaseStore, "symbol", "ab"), KindNotFound},
		{"InvalidInput", InvalidInput(PhaseConfig, "workers"), KindInvalidInput},
		{"IO", IO(PhaseBuild, "read", errors.New("x")), KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Detail == "" {
				t.Error("Detail should be set")
			}
		})
	}

	if got := Malformed(10, "x").Offset; got != 10 {
		t.Errorf("Malformed offset = %d, want 10", got)
	}
	if got := ConflictingEntityKind("ab", "record", "function").Phase; got != PhaseMerge {
		t.Errorf("ConflictingEntityKind phase = %v", got)
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", TooManyReturns(nil))
	if got := KindOf(err); got != KindTooManyReturnsNodes {
		t.Errorf("KindOf = %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if _, ok := As(nil); ok {
		t.Error("As(nil) should fail")
	}
}
