package bitcode

import (
	"testing"

	"github.com/wippyai/doccorpus/internal/fixture"
)

func FuzzDecode(f *testing.F) {
	// Add a full container as seed
	if data, err := Encode(fixture.Sample()); err == nil {
		f.Add(data)
	}

	// Add signature only
	f.Add([]byte("DOCS"))

	// Add truncated data
	f.Add([]byte{'D', 'O', 'C'})

	// Add a block header claiming more bytes than exist
	f.Add([]byte{'D', 'O', 'C', 'S', 0x01, 0x09, 0xFF, 0xFF, 0xFF, 0x7F})

	f.Fuzz(func(t *testing.T, data []byte) {
		infos, err := Decode(data)
		if err != nil && infos != nil {
			t.Fatalf("entities returned alongside error %v", err)
		}
	})
}
