// Package fixture builds small entity sets for tests across the module.
package fixture

import (
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/meta"
)

// ID returns a deterministic identifier derived from n.
func ID(n byte) meta.SymbolID {
	var id meta.SymbolID
	id[0] = n
	id[meta.SymbolIDSize-1] = n
	return id
}

// Text builds a single-text inline list.
func Text(s string) []javadoc.Inline {
	return []javadoc.Inline{&javadoc.Text{String: s}}
}

// Ref builds a reference with its display fields.
func Ref(n byte, name, path string, kind meta.InfoKind, rel meta.Relation) meta.Reference {
	return meta.Reference{ID: ID(n), Name: name, Path: path, Kind: kind, Relation: rel}
}

// TypeRef builds an unresolved type reference by name.
func TypeRef(name string) meta.Reference {
	return meta.Reference{Name: name, Relation: meta.RelationType}
}

// Well-known identifiers of the sample.
var (
	AppID     = ID(1)
	DetailID  = ID(2)
	WidgetID  = ID(3)
	BaseID    = ID(4)
	RunID     = ID(5)
	ColorID   = ID(6)
	SizeID    = ID(7)
	ShapeID   = ID(8)
	PrimaryID = ID(9)
	DrawID    = ID(10)
	ModeID    = ID(11)
	HandleID  = ID(12)
)

// Sample returns one unit's worth of entities covering every entity kind
// and every documentation node kind.
func Sample() []meta.Info {
	appRef := Ref(1, "app", "", meta.KindNamespace, meta.RelationNamespace)

	ns := &meta.Namespace{
		Base: meta.Base{
			ID:   AppID,
			Name: "app",
			Doc: &javadoc.Javadoc{
				Blocks: []javadoc.Block{&javadoc.Brief{Children: Text("Application root.")}},
			},
		},
		Children: meta.Scope{
			Namespaces: []meta.Reference{Ref(2, "detail", "app", meta.KindNamespace, meta.RelationChildNamespace)},
			Records:    []meta.Reference{Ref(3, "Widget", "app", meta.KindRecord, meta.RelationChildRecord)},
			Functions:  []meta.Reference{Ref(5, "run", "app", meta.KindFunction, meta.RelationChildFunction)},
			Enums: []*meta.Enum{{
				Base: meta.Base{
					ID:        ColorID,
					Name:      "Color",
					Path:      "app",
					Namespace: []meta.Reference{appRef},
				},
				Scoped: true,
				Members: []meta.EnumValue{
					{Name: "Red", Value: "0"},
					{Name: "Blue", Value: "2", Expr: "1 + 1"},
				},
			}},
			Typedefs: []*meta.Typedef{{
				Base:       meta.Base{ID: SizeID, Name: "Size", Path: "app"},
				IsAlias:    true,
				Underlying: &meta.TypeInfo{Type: TypeRef("unsigned long")},
			}},
		},
	}

	widget := &meta.Record{
		Base: meta.Base{
			ID:        WidgetID,
			Name:      "Widget",
			Path:      "app",
			Namespace: []meta.Reference{appRef},
			DefLoc:    &meta.Location{Line: 10, Filename: "widget.h", IsDefinition: true},
			Loc:       []meta.Location{{Line: 4, Filename: "fwd.h"}},
			Doc: &javadoc.Javadoc{
				Blocks: []javadoc.Block{
					&javadoc.Paragraph{Children: []javadoc.Inline{
						&javadoc.Text{String: "A widget "},
						&javadoc.StyledText{String: "thing", Style: javadoc.StyleBold},
					}},
					&javadoc.Admonition{Style: javadoc.AdmonishWarning, Children: Text("Not thread safe.")},
					&javadoc.Code{Children: Text("Widget w;")},
				},
				TParams: []*javadoc.TParam{{Name: "T", Children: Text("element type")}},
			},
		},
		TagType: meta.TagClass,
		Members: []meta.MemberType{{
			FieldType: meta.FieldType{Name: "size_", Type: TypeRef("int")},
			Access:    meta.AccessPrivate,
			Doc:       &javadoc.Javadoc{Blocks: []javadoc.Block{&javadoc.Paragraph{Children: Text("Cached size.")}}},
		}},
		Parents:        []meta.Reference{Ref(4, "Base", "app", meta.KindRecord, meta.RelationParent)},
		VirtualParents: []meta.Reference{Ref(8, "Shape", "app", meta.KindRecord, meta.RelationVirtualParent)},
		Bases: []meta.BaseRecord{{
			ID:       BaseID,
			Name:     "Base",
			Path:     "app",
			TagType:  meta.TagStruct,
			Access:   meta.AccessPublic,
			IsParent: true,
			Members: []meta.MemberType{{
				FieldType: meta.FieldType{Name: "id", Type: TypeRef("int")},
				Access:    meta.AccessProtected,
			}},
		}},
		Template: &meta.Template{
			Params: []meta.TemplateParam{{Contents: "typename T"}},
			Specialization: &meta.TemplateSpecialization{
				SpecializationOf: PrimaryID,
				Params:           []meta.TemplateParam{{Contents: "int"}},
			},
		},
		Children: meta.Scope{
			Functions: []meta.Reference{Ref(10, "draw", "app::Widget", meta.KindFunction, meta.RelationChildFunction)},
		},
	}

	draw := &meta.Function{
		Base: meta.Base{
			ID:        DrawID,
			Name:      "draw",
			Path:      "app::Widget",
			Namespace: []meta.Reference{Ref(3, "Widget", "app", meta.KindRecord, meta.RelationNamespace), appRef},
			Doc: &javadoc.Javadoc{
				Blocks:  []javadoc.Block{&javadoc.Brief{Children: Text("Draws the widget.")}},
				Params:  []*javadoc.Param{{Name: "scale", Children: Text("zoom factor")}},
				Returns: &javadoc.Returns{Children: Text("true on success")},
			},
		},
		IsMethod:   true,
		Access:     meta.AccessProtected,
		Parent:     &meta.Reference{ID: WidgetID, Name: "Widget", Path: "app", Kind: meta.KindRecord, Relation: meta.RelationParent},
		ReturnType: &meta.TypeInfo{Type: TypeRef("bool")},
		Params:     []meta.FieldType{{Name: "scale", DefaultValue: "1.0", Type: TypeRef("double")}},
		Template:   &meta.Template{Params: []meta.TemplateParam{{Contents: "class U"}}},
	}

	mode := &meta.Enum{
		Base:     meta.Base{ID: ModeID, Name: "Mode"},
		BaseType: &meta.TypeInfo{Type: TypeRef("uint8_t")},
		Members:  []meta.EnumValue{{Name: "On", Value: "1"}},
	}

	handle := &meta.Typedef{
		Base: meta.Base{ID: HandleID, Name: "Handle", Path: "app"},
		Underlying: &meta.TypeInfo{Type: meta.Reference{
			ID: WidgetID, Name: "Widget", Path: "app", Kind: meta.KindRecord, Relation: meta.RelationType,
		}},
	}

	return []meta.Info{ns, widget, draw, mode, handle}
}

// Function builds a bare function entity.
func Function(n byte, name, path string) *meta.Function {
	return &meta.Function{Base: meta.Base{ID: ID(n), Name: name, Path: path}}
}

// Record builds a bare class entity.
func Record(n byte, name, path string) *meta.Record {
	return &meta.Record{Base: meta.Base{ID: ID(n), Name: name, Path: path}, TagType: meta.TagClass}
}
