package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/internal/fixture"
	"github.com/wippyai/doccorpus/meta"
)

func touch(t *testing.T, dir, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func encode(t *testing.T, infos ...meta.Info) []byte {
	t.Helper()
	data, err := bitcode.Encode(infos)
	require.NoError(t, err)
	return data
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.docs", nil)
	b := touch(t, dir, "sub/b.docs", nil)
	d := touch(t, dir, "sub/deep/d.docs", nil)
	touch(t, dir, "sub/c.txt", nil)
	touch(t, dir, "third_party/x.docs", nil)
	touch(t, dir, "sub/skip.docs", nil)

	got, err := Discover(dir, []string{"**/*.docs"}, []string{"third_party/**", "**/skip.docs"})
	require.NoError(t, err)
	require.Equal(t, []string{a, b, d}, got)
}

func TestDiscoverEmpty(t *testing.T) {
	got, err := Discover(t.TempDir(), []string{"**/*.docs"}, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDiscoverBadPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), []string{"[a"}, nil)
	require.Error(t, err)
	require.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{"**/*.docs"}, nil)
	require.Error(t, err)
	require.Equal(t, errors.KindIO, errors.KindOf(err))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.docs", encode(t, fixture.Sample()...))

	draw := fixture.Function(10, "draw", "app::Widget")
	draw.Loc = []meta.Location{{Filename: "widget.cc", Line: 88}}
	touch(t, dir, "b.docs", encode(t, draw))
	bad := touch(t, dir, "bad.docs", []byte("XXXXjunk"))

	var calls, totals []int
	report, err := Run(context.Background(), Options{
		Dir:     dir,
		Include: []string{"**/*.docs"},
		Workers: 2,
		Progress: func(done, total int, path string) {
			calls = append(calls, done)
			totals = append(totals, total)
		},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, calls)
	require.Equal(t, []int{3, 3, 3}, totals)

	require.Equal(t, 3, report.Units)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	require.Equal(t, bad, report.Failures[0].Path)
	require.True(t, errors.Is(report.Failures[0].Err, errors.ErrBadSignature))
	e, ok := errors.As(report.Failures[0].Err)
	require.True(t, ok)
	require.Equal(t, bad, e.Unit)

	require.Empty(t, report.Warnings)
	require.Empty(t, report.MergeFailures)
	require.Equal(t, 5, report.Corpus.Len())

	got, ok := report.Corpus.Get(fixture.DrawID)
	require.True(t, ok)
	require.Equal(t, []meta.Location{{Filename: "widget.cc", Line: 88}}, got.Common().Loc)
	require.Equal(t, "Draws the widget.", got.Common().Doc.BriefText())
}

func TestRunMergeFailure(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.docs", encode(t, fixture.Record(1, "X", "")))
	b := touch(t, dir, "b.docs", encode(t, fixture.Function(1, "X", ""), fixture.Function(2, "ok", "")))

	report, err := RunPaths(context.Background(), []string{a, b}, Options{})
	require.NoError(t, err)
	require.Len(t, report.MergeFailures, 1)
	require.True(t, errors.Is(report.MergeFailures[0].Err, errors.ErrConflictingEntityKind))
	require.Equal(t, 1, report.Corpus.Len())
}

func TestRunUnreadableUnit(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.docs")
	report, err := RunPaths(context.Background(), []string{missing}, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.Equal(t, errors.KindIO, errors.KindOf(report.Failures[0].Err))
	require.Zero(t, report.Corpus.Len())
}

func TestRunVersionMismatch(t *testing.T) {
	path := touch(t, t.TempDir(), "a.docs", encode(t, fixture.Function(1, "f", "")))
	report, err := RunPaths(context.Background(), []string{path}, Options{Version: bitcode.Version + 1})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.True(t, errors.Is(report.Failures[0].Err, errors.ErrVersionMismatch))
}

func TestRunCancelled(t *testing.T) {
	path := touch(t, t.TempDir(), "a.docs", encode(t, fixture.Function(1, "f", "")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunPaths(ctx, []string{path}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.docs", encode(t, fixture.Function(1, "f", "")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan *Report, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{
			Dir:      dir,
			Include:  []string{"**/*.docs"},
			Debounce: 50 * time.Millisecond,
		}, func(r *Report, err error) {
			if err == nil {
				select {
				case reports <- r:
				default:
				}
			}
		})
	}()

	wait := func(units int) {
		t.Helper()
		deadline := time.After(10 * time.Second)
		for {
			select {
			case r := <-reports:
				if r.Units == units {
					return
				}
			case <-deadline:
				t.Fatalf("no build with %d units", units)
			}
		}
	}

	wait(1)
	touch(t, dir, "b.docs", encode(t, fixture.Function(2, "g", "")))
	wait(2)
	touch(t, dir, "notes.txt", []byte("ignored"))

	staging := t.TempDir()
	touch(t, staging, "sub/c.docs", encode(t, fixture.Function(3, "h", "")))
	require.NoError(t, os.Rename(filepath.Join(staging, "sub"), filepath.Join(dir, "sub")))
	wait(3)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}
