package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/merge"
	"github.com/wippyai/doccorpus/meta"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <container>",
		Short: "Decode one unit container and print its entities as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.IO(errors.PhaseDecode, "read "+args[0], err)
			}
			infos, err := bitcode.DecodeWithOptions(data, bitcode.DecodeOptions{
				Unit:    args[0],
				Version: a.cfg.Decode.Version,
			})
			if err != nil {
				return err
			}

			views := make([]entityView, 0, len(infos))
			for _, info := range infos {
				merge.ComputeBriefs(info)
				views = append(views, viewOf(info))
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(views)
		},
	}
}

type entityView struct {
	Kind      string         `yaml:"kind"`
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Path      string         `yaml:"path,omitempty"`
	Namespace []string       `yaml:"namespace,omitempty"`
	DefinedAt string         `yaml:"defined_at,omitempty"`
	Declared  []string       `yaml:"declared_at,omitempty"`
	Doc       *docView       `yaml:"doc,omitempty"`
	Fields    map[string]any `yaml:"fields,omitempty"`
}

type docView struct {
	Brief   string     `yaml:"brief,omitempty"`
	Blocks  []nodeView `yaml:"blocks,omitempty"`
	Params  []nodeView `yaml:"params,omitempty"`
	TParams []nodeView `yaml:"tparams,omitempty"`
	Returns string     `yaml:"returns,omitempty"`
}

type nodeView struct {
	Kind  string `yaml:"kind"`
	Name  string `yaml:"name,omitempty"`
	Style string `yaml:"style,omitempty"`
	Text  string `yaml:"text"`
}

func viewOf(info meta.Info) entityView {
	b := info.Common()
	v := entityView{
		Kind:   info.Kind().String(),
		ID:     b.ID.String(),
		Name:   b.Name,
		Path:   b.Path,
		Doc:    docOf(b.Doc),
		Fields: map[string]any{},
	}
	for _, ns := range b.Namespace {
		v.Namespace = append(v.Namespace, refString(ns))
	}
	if b.DefLoc != nil {
		v.DefinedAt = locString(*b.DefLoc)
	}
	for _, l := range b.Loc {
		v.Declared = append(v.Declared, locString(l))
	}

	switch e := info.(type) {
	case *meta.Namespace:
		scopeFields(v.Fields, &e.Children)
	case *meta.Record:
		v.Fields["tag"] = e.TagType.String()
		if e.IsTypedef {
			v.Fields["typedef"] = true
		}
		putRefs(v.Fields, "parents", e.Parents)
		putRefs(v.Fields, "virtual_parents", e.VirtualParents)
		if len(e.Members) > 0 {
			members := make([]string, 0, len(e.Members))
			for _, m := range e.Members {
				members = append(members, fmt.Sprintf("%s %s %s", m.Access, m.Type.Name, m.Name))
			}
			v.Fields["members"] = members
		}
		if len(e.Bases) > 0 {
			bases := make([]string, 0, len(e.Bases))
			for _, base := range e.Bases {
				s := base.Access.String() + " " + base.Name
				if base.IsVirtual {
					s = "virtual " + s
				}
				bases = append(bases, s)
			}
			v.Fields["bases"] = bases
		}
		templateFields(v.Fields, e.Template)
		scopeFields(v.Fields, &e.Children)
	case *meta.Function:
		v.Fields["access"] = e.Access.String()
		if e.IsMethod {
			v.Fields["method"] = true
		}
		if e.ReturnType != nil {
			v.Fields["returns"] = e.ReturnType.Type.Name
		}
		if len(e.Params) > 0 {
			params := make([]string, 0, len(e.Params))
			for _, p := range e.Params {
				s := p.Type.Name + " " + p.Name
				if p.DefaultValue != "" {
					s += " = " + p.DefaultValue
				}
				params = append(params, s)
			}
			v.Fields["params"] = params
		}
		templateFields(v.Fields, e.Template)
	case *meta.Enum:
		if e.Scoped {
			v.Fields["scoped"] = true
		}
		if e.BaseType != nil {
			v.Fields["base_type"] = e.BaseType.Type.Name
		}
		if len(e.Members) > 0 {
			values := make([]string, 0, len(e.Members))
			for _, m := range e.Members {
				s := m.Name + " = " + m.Value
				if m.Expr != "" {
					s += " (" + m.Expr + ")"
				}
				values = append(values, s)
			}
			v.Fields["values"] = values
		}
	case *meta.Typedef:
		if e.IsAlias {
			v.Fields["alias"] = true
		}
		if e.Underlying != nil {
			v.Fields["underlying"] = e.Underlying.Type.Name
		}
	}
	return v
}

func scopeFields(fields map[string]any, s *meta.Scope) {
	putRefs(fields, "namespaces", s.Namespaces)
	putRefs(fields, "records", s.Records)
	putRefs(fields, "functions", s.Functions)
	if len(s.Enums) > 0 {
		enums := make([]entityView, 0, len(s.Enums))
		for _, e := range s.Enums {
			enums = append(enums, viewOf(e))
		}
		fields["enums"] = enums
	}
	if len(s.Typedefs) > 0 {
		typedefs := make([]entityView, 0, len(s.Typedefs))
		for _, t := range s.Typedefs {
			typedefs = append(typedefs, viewOf(t))
		}
		fields["typedefs"] = typedefs
	}
}

func templateFields(fields map[string]any, t *meta.Template) {
	if t == nil {
		return
	}
	params := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		params = append(params, p.Contents)
	}
	fields["template"] = params
	if t.Specialization != nil {
		fields["specialization_of"] = t.Specialization.SpecializationOf.String()
	}
}

func putRefs(fields map[string]any, key string, refs []meta.Reference) {
	if len(refs) == 0 {
		return
	}
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, refString(r))
	}
	fields[key] = out
}

func refString(r meta.Reference) string {
	name := r.Name
	if r.Path != "" {
		name = r.Path + "::" + r.Name
	}
	if r.ID.IsZero() {
		return name
	}
	return name + " [" + r.ID.String()[:8] + "]"
}

func locString(l meta.Location) string {
	return fmt.Sprintf("%s:%d", l.Filename, l.Line)
}

func docOf(d *javadoc.Javadoc) *docView {
	if d.Empty() {
		return nil
	}
	v := &docView{Brief: d.BriefText()}
	for _, b := range d.Blocks {
		n := nodeView{Kind: b.Kind().String(), Text: javadoc.PlainText(b.Inlines())}
		if adm, ok := b.(*javadoc.Admonition); ok {
			n.Style = adm.Style.String()
		}
		v.Blocks = append(v.Blocks, n)
	}
	for _, p := range d.Params {
		v.Params = append(v.Params, nodeView{Kind: p.Kind().String(), Name: p.Name, Text: javadoc.PlainText(p.Children)})
	}
	for _, p := range d.TParams {
		v.TParams = append(v.TParams, nodeView{Kind: p.Kind().String(), Name: p.Name, Text: javadoc.PlainText(p.Children)})
	}
	if !d.Returns.Empty() {
		v.Returns = javadoc.PlainText(d.Returns.Children)
	}
	return v
}

// docText renders a comment as plain paragraphs for the terminal.
func docText(d *javadoc.Javadoc) string {
	if d.Empty() {
		return ""
	}
	var sb strings.Builder
	for _, b := range d.Blocks {
		if adm, ok := b.(*javadoc.Admonition); ok {
			sb.WriteString(strings.ToUpper(adm.Style.String()) + ": ")
		}
		sb.WriteString(javadoc.PlainText(b.Inlines()))
		sb.WriteString("\n\n")
	}
	for _, p := range d.TParams {
		fmt.Fprintf(&sb, "@tparam %s %s\n", p.Name, javadoc.PlainText(p.Children))
	}
	for _, p := range d.Params {
		fmt.Fprintf(&sb, "@param %s %s\n", p.Name, javadoc.PlainText(p.Children))
	}
	if !d.Returns.Empty() {
		fmt.Fprintf(&sb, "@returns %s\n", javadoc.PlainText(d.Returns.Children))
	}
	return strings.TrimRight(sb.String(), "\n")
}
