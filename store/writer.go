package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/build"
	"github.com/wippyai/doccorpus/corpus"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/merge"
	"github.com/wippyai/doccorpus/meta"
)

// Writer records builds.
type Writer struct {
	s *Store
}

// Save writes c and the anomalies of report as a new build in one
// transaction, replacing the entities of earlier builds. It returns the
// build id.
func (w *Writer) Save(ctx context.Context, c *corpus.Corpus, report *build.Report) (string, error) {
	id := uuid.NewString()

	tx, err := w.s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.IO(errors.PhaseStore, "begin transaction", err)
	}
	defer tx.Rollback()

	var units, failed int
	if report != nil {
		units, failed = report.Units, report.Failed
	}
	q, args, err := sq.Insert("builds").
		Columns("id", "created_at", "units", "failed", "entities").
		Values(id, time.Now().UTC().Format(time.RFC3339Nano), units, failed, c.Len()).
		ToSql()
	if err != nil {
		return "", errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return "", errors.IO(errors.PhaseStore, "insert build", err)
	}

	for _, table := range []string{"symbols", "anomalies"} {
		q, args, _ := sq.Delete(table).Where(sq.NotEq{"build_id": id}).ToSql()
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return "", errors.IO(errors.PhaseStore, "clear "+table, err)
		}
	}

	if err := saveSymbols(ctx, tx, id, c); err != nil {
		return "", err
	}
	if report != nil {
		if err := saveAnomalies(ctx, tx, id, report); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.IO(errors.PhaseStore, "commit", err)
	}
	w.s.cache.Clear()

	Logger().Info("saved build",
		zap.String("build", id),
		zap.Int("entities", c.Len()))
	return id, nil
}

func saveSymbols(ctx context.Context, tx *sql.Tx, buildID string, c *corpus.Corpus) error {
	insert := func(info meta.Info, owned bool) error {
		payload, err := bitcode.Encode([]meta.Info{info})
		if err != nil {
			return errors.Wrap(errors.PhaseStore, errors.KindOf(err), err, "encode "+meta.QualifiedName(info))
		}
		b := info.Common()
		q, args, err := sq.Insert("symbols").
			Columns("build_id", "id", "kind", "name", "path", "qualified", "brief", "owned", "payload").
			Values(buildID, b.ID.String(), uint32(info.Kind()), b.Name, b.Path,
				meta.QualifiedName(info), b.Doc.BriefText(), owned, payload).
			ToSql()
		if err != nil {
			return errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return errors.IO(errors.PhaseStore, "insert symbol "+b.ID.String(), err)
		}
		return nil
	}

	seen := make(map[meta.SymbolID]bool, c.Len())
	for _, info := range c.Infos() {
		seen[info.Common().ID] = true
		if err := insert(info, false); err != nil {
			return err
		}
	}
	for _, info := range c.Infos() {
		for _, child := range ownedChildren(info) {
			id := child.Common().ID
			if seen[id] {
				continue
			}
			seen[id] = true
			if err := insert(child, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func ownedChildren(info meta.Info) []meta.Info {
	var s *meta.Scope
	switch v := info.(type) {
	case *meta.Namespace:
		s = &v.Children
	case *meta.Record:
		s = &v.Children
	default:
		return nil
	}
	out := make([]meta.Info, 0, len(s.Enums)+len(s.Typedefs))
	for _, e := range s.Enums {
		out = append(out, e)
	}
	for _, t := range s.Typedefs {
		out = append(out, t)
	}
	return out
}

// anomalyBatch keeps one insert under the SQLite bound-parameter limit.
const anomalyBatch = 500

func saveAnomalies(ctx context.Context, tx *sql.Tx, buildID string, report *build.Report) error {
	var rows []Anomaly
	for _, f := range report.Failures {
		rows = append(rows, Anomaly{Kind: string(errors.KindOf(f.Err)), Unit: f.Path, Detail: f.Err.Error()})
	}
	for _, w := range report.Warnings {
		rows = append(rows, Anomaly{Kind: string(w.Kind), Symbol: w.Symbol.String(), Detail: w.Detail})
	}
	for _, f := range report.MergeFailures {
		rows = append(rows, mergeFailure(f))
	}
	if len(rows) == 0 {
		return nil
	}

	for len(rows) > 0 {
		n := min(len(rows), anomalyBatch)
		ins := sq.Insert("anomalies").Columns("build_id", "kind", "symbol", "unit", "detail")
		for _, a := range rows[:n] {
			ins = ins.Values(buildID, a.Kind, a.Symbol, a.Unit, a.Detail)
		}
		q, args, err := ins.ToSql()
		if err != nil {
			return errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build query")
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return errors.IO(errors.PhaseStore, "insert anomalies", err)
		}
		rows = rows[n:]
	}
	return nil
}

func mergeFailure(f merge.Failure) Anomaly {
	return Anomaly{
		Kind:   string(errors.KindOf(f.Err)),
		Symbol: f.Symbol.String(),
		Detail: f.Err.Error(),
	}
}
