package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/internal/fixture"
	"github.com/wippyai/doccorpus/merge"
)

func TestViewOf(t *testing.T) {
	infos := fixture.Sample()
	for _, info := range infos {
		merge.ComputeBriefs(info)
	}

	ns := viewOf(infos[0])
	if ns.Kind != "namespace" || ns.Name != "app" {
		t.Fatalf("namespace view = %+v", ns)
	}
	if ns.Doc == nil || ns.Doc.Brief != "Application root." {
		t.Errorf("namespace brief = %+v", ns.Doc)
	}
	enums, ok := ns.Fields["enums"].([]entityView)
	if !ok || len(enums) != 1 || enums[0].Name != "Color" {
		t.Errorf("owned enums = %#v", ns.Fields["enums"])
	}

	w := viewOf(infos[1])
	if w.DefinedAt != "widget.h:10" {
		t.Errorf("DefinedAt = %q", w.DefinedAt)
	}
	if got := w.Fields["tag"]; got != "class" {
		t.Errorf("tag = %v", got)
	}
	if len(w.Doc.Blocks) != 3 || w.Doc.Blocks[1].Style != "warning" {
		t.Errorf("blocks = %+v", w.Doc.Blocks)
	}

	draw := viewOf(infos[2])
	if draw.Doc.Returns != "true on success" {
		t.Errorf("returns = %q", draw.Doc.Returns)
	}
	if got := draw.Fields["params"].([]string); got[0] != "double scale = 1.0" {
		t.Errorf("params = %v", got)
	}
}

func TestDocText(t *testing.T) {
	infos := fixture.Sample()
	merge.ComputeBriefs(infos[2])
	got := docText(infos[2].Common().Doc)
	want := "Draws the widget.\n\n@param scale zoom factor\n@returns true on success"
	if got != want {
		t.Errorf("docText =\n%s\nwant\n%s", got, want)
	}
	if docText(nil) != "" {
		t.Error("nil doc renders text")
	}
}

func TestDumpCommand(t *testing.T) {
	data, err := bitcode.Encode(fixture.Sample())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.docs")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--root", dir, "dump", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("dump: %v", err)
	}
	for _, want := range []string{"kind: namespace", "name: Widget", "brief: Draws the widget.", "defined_at: widget.h:10"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}
