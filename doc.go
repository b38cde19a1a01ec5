// Package doccorpus turns per-translation-unit symbol containers into one
// canonical, deduplicated documentation corpus.
//
// Each compilation unit is described by a small binary container listing the
// namespaces, records, functions, enums and typedefs it saw, together with
// their documentation comments. Containers are decoded independently, merged
// by symbol identifier, and the result is exposed for lookup, listing and
// rendering.
//
// # Architecture Overview
//
//	doccorpus/
//	├── bitcode/         Container decoder and encoder
//	│   └── internal/bitstream/  Token cursor and writer
//	├── meta/            Symbol model: identifiers, entities, references
//	├── javadoc/         Documentation comment tree
//	├── merge/           Cross-unit merge by identifier
//	├── corpus/          Canonical lookup, index order, hierarchy
//	├── store/           SQLite persistence of built corpora
//	├── build/           Discovery, parallel decode, watch mode
//	├── config/          Layered configuration
//	├── errors/          Structured error types
//	└── cmd/doccorpus/   Command-line tool
//
// # Quick Start
//
//	infos, err := bitcode.Decode(data)
//	if err != nil {
//		return err
//	}
//	res := merge.Merge([][]meta.Info{infos}, merge.Options{})
//	c := corpus.New(res.Infos)
//	w, ok := c.Get(id)
//
// Whole directories are built with build.Run, which reports failed units and
// merge anomalies alongside the corpus.
//
// # Error Handling
//
// All packages return *errors.Error values carrying a phase, a kind and the
// unit, block path or symbol involved. Match kinds with the sentinels:
//
//	if errors.Is(err, errors.ErrVersionMismatch) {
//		// rebuild the unit with a matching producer
//	}
package doccorpus
