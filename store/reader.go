package store

import (
	"context"
	"database/sql"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/corpus"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/merge"
	"github.com/wippyai/doccorpus/meta"
)

// Reader queries the latest build.
type Reader struct {
	s *Store
}

// Row is one listed entity.
type Row struct {
	QualifiedName string
	Name          string
	Path          string
	Brief         string
	ID            meta.SymbolID
	Kind          meta.InfoKind
}

// Filter narrows Symbols. Zero values match everything.
type Filter struct {
	Prefix string // qualified-name prefix, case-sensitive
	Kind   meta.InfoKind
	Limit  int
}

// Anomaly is a recorded build problem: a failed unit, a merge warning or a
// failed merge.
type Anomaly struct {
	Kind   string
	Symbol string
	Unit   string
	Detail string
}

// Lookup returns the entity with the given identifier, decoding it from the
// database on a cache miss.
func (r *Reader) Lookup(ctx context.Context, id meta.SymbolID) (meta.Info, error) {
	if info, ok := r.s.cache.Get(id); ok {
		return info, nil
	}

	buildID, err := latestBuild(ctx, r.s.db)
	if err != nil {
		return nil, err
	}
	q, args, err := sq.Select("payload").From("symbols").
		Where(sq.Eq{"build_id": buildID, "id": id.String()}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
	}
	var payload []byte
	if err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound(errors.PhaseStore, "symbol", id.String())
		}
		return nil, errors.IO(errors.PhaseStore, "query symbol", err)
	}

	info, err := decodeOne(payload, id.String())
	if err != nil {
		return nil, err
	}
	r.s.cache.Set(id, info)
	return info, nil
}

func decodeOne(payload []byte, unit string) (meta.Info, error) {
	infos, err := bitcode.DecodeWithOptions(payload, bitcode.DecodeOptions{Unit: unit})
	if err != nil {
		return nil, err
	}
	if len(infos) != 1 {
		return nil, errors.New(errors.PhaseStore, errors.KindMalformedStream).
			Unit(unit).
			Detail("payload holds %d entities", len(infos)).
			Build()
	}
	merge.ComputeBriefs(infos[0])
	return infos[0], nil
}

// Symbols lists entities of the latest build in index order.
func (r *Reader) Symbols(ctx context.Context, f Filter) ([]Row, error) {
	buildID, err := latestBuild(ctx, r.s.db)
	if err != nil {
		return nil, err
	}

	sel := sq.Select("id", "kind", "name", "path", "qualified", "brief").
		From("symbols").
		Where(sq.Eq{"build_id": buildID})
	if f.Kind != meta.KindDefault {
		sel = sel.Where(sq.Eq{"kind": uint32(f.Kind)})
	}
	if f.Prefix != "" {
		sel = sel.Where(sq.Expr("substr(qualified, 1, ?) = ?", len(f.Prefix), f.Prefix))
	}
	q, args, err := sel.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
	}

	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, "query symbols", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row  Row
			hex  string
			kind uint32
		)
		if err := rows.Scan(&hex, &kind, &row.Name, &row.Path, &row.QualifiedName, &row.Brief); err != nil {
			return nil, errors.IO(errors.PhaseStore, "scan symbol", err)
		}
		if row.ID, err = meta.ParseSymbolID(hex); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindBadIdentifierLength, err, "stored id "+hex)
		}
		row.Kind = meta.InfoKind(kind)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IO(errors.PhaseStore, "iterate symbols", err)
	}

	slices.SortFunc(out, func(a, b Row) int {
		if d := corpus.CompareNames(a.QualifiedName, b.QualifiedName); d != 0 {
			return d
		}
		return a.ID.Compare(b.ID)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Corpus loads every top-level entity of the latest build.
func (r *Reader) Corpus(ctx context.Context) (*corpus.Corpus, error) {
	buildID, err := latestBuild(ctx, r.s.db)
	if err != nil {
		return nil, err
	}
	q, args, err := sq.Select("id", "payload").From("symbols").
		Where(sq.Eq{"build_id": buildID, "owned": false}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
	}
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, "query corpus", err)
	}
	defer rows.Close()

	var infos []meta.Info
	for rows.Next() {
		var (
			hex     string
			payload []byte
		)
		if err := rows.Scan(&hex, &payload); err != nil {
			return nil, errors.IO(errors.PhaseStore, "scan corpus", err)
		}
		info, err := decodeOne(payload, hex)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IO(errors.PhaseStore, "iterate corpus", err)
	}

	Logger().Debug("loaded corpus",
		zap.String("build", buildID),
		zap.Int("entities", len(infos)))
	return corpus.New(infos), nil
}

// Anomalies lists the problems recorded with the latest build.
func (r *Reader) Anomalies(ctx context.Context) ([]Anomaly, error) {
	buildID, err := latestBuild(ctx, r.s.db)
	if err != nil {
		return nil, err
	}
	q, args, err := sq.Select("kind", "symbol", "unit", "detail").From("anomalies").
		Where(sq.Eq{"build_id": buildID}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
	}
	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, "query anomalies", err)
	}
	defer rows.Close()

	var out []Anomaly
	for rows.Next() {
		var a Anomaly
		if err := rows.Scan(&a.Kind, &a.Symbol, &a.Unit, &a.Detail); err != nil {
			return nil, errors.IO(errors.PhaseStore, "scan anomaly", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IO(errors.PhaseStore, "iterate anomalies", err)
	}
	return out, nil
}
