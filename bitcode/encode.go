package bitcode

import (
	"fmt"
	"math"

	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/meta"
)

// Encode writes a complete container holding infos: signature, block-info,
// version and one block per entity. Decode(Encode(x)) reproduces x.
func Encode(infos []meta.Info) ([]byte, error) {
	e := &encoder{w: bitstream.NewWriter()}
	e.w.WriteSignature()

	e.w.EnterBlock(uint32(BlockInfo))
	e.w.EndBlock()

	e.w.EnterBlock(uint32(BlockVersion))
	e.record(RecordVersion, []uint64{Version}, nil)
	e.w.EndBlock()

	for i, info := range infos {
		if err := e.info(info); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return e.w.Bytes(), nil
}

type encoder struct {
	w *bitstream.Writer
}

func (e *encoder) info(info meta.Info) error {
	switch v := info.(type) {
	case *meta.Namespace:
		return e.namespace(v)
	case *meta.Record:
		return e.recordInfo(v)
	case *meta.Function:
		return e.function(v)
	case *meta.Enum:
		return e.enum(v)
	case *meta.Typedef:
		return e.typedef(v)
	}
	return errors.New(errors.PhaseEncode, errors.KindInvalidInput).
		Detail("cannot encode %T", info).
		Build()
}

func (e *encoder) record(id RecordID, fields []uint64, blob []byte) {
	e.w.WriteRecord(uint32(id), fields, blob)
}

func (e *encoder) str(id RecordID, s string) {
	if s != "" {
		e.record(id, nil, []byte(s))
	}
}

func (e *encoder) flag(id RecordID, b bool) {
	if b {
		e.record(id, []uint64{1}, nil)
	}
}

func (e *encoder) value(id RecordID, v uint32) {
	if v != 0 {
		e.record(id, []uint64{uint64(v)}, nil)
	}
}

func (e *encoder) usr(id RecordID, sid meta.SymbolID) {
	if !sid.IsZero() {
		e.record(id, []uint64{meta.SymbolIDSize}, sid[:])
	}
}

func (e *encoder) location(id RecordID, loc meta.Location) error {
	if loc.Line < 0 || loc.Line > math.MaxInt32 {
		return errors.New(errors.PhaseEncode, errors.KindIntegerOverflow).
			Path("location", "line").
			Value(loc.Line).
			Detail("line %d out of range", loc.Line).
			Build()
	}
	def := uint64(0)
	if loc.IsDefinition {
		def = 1
	}
	e.record(id, []uint64{uint64(loc.Line), def}, []byte(loc.Filename))
	return nil
}

func (e *encoder) common(b *meta.Base, ids commonRecords) error {
	e.usr(ids.usr, b.ID)
	e.str(ids.name, b.Name)
	e.str(ids.path, b.Path)
	if b.DefLoc != nil {
		if err := e.location(ids.defLoc, *b.DefLoc); err != nil {
			return err
		}
	}
	for _, loc := range b.Loc {
		if err := e.location(ids.loc, loc); err != nil {
			return err
		}
	}
	return nil
}

// commonBlocks writes the doc and enclosing-namespace sub-blocks.
func (e *encoder) commonBlocks(b *meta.Base) {
	if b.Doc != nil {
		e.javadoc(b.Doc)
	}
	e.refs(b.Namespace, meta.RelationNamespace)
}

func (e *encoder) namespace(v *meta.Namespace) error {
	e.w.EnterBlock(uint32(BlockNamespace))
	defer e.w.EndBlock()
	if err := e.common(&v.Base, namespaceCommon); err != nil {
		return err
	}
	e.commonBlocks(&v.Base)
	e.refs(v.Children.Namespaces, meta.RelationChildNamespace)
	return e.scope(&v.Children)
}

// scope writes record and function children and the owned enums and typedefs.
func (e *encoder) scope(s *meta.Scope) error {
	e.refs(s.Records, meta.RelationChildRecord)
	e.refs(s.Functions, meta.RelationChildFunction)
	for _, en := range s.Enums {
		if err := e.enum(en); err != nil {
			return err
		}
	}
	for _, td := range s.Typedefs {
		if err := e.typedef(td); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) recordInfo(v *meta.Record) error {
	e.w.EnterBlock(uint32(BlockRecord))
	defer e.w.EndBlock()
	if err := e.common(&v.Base, recordCommon); err != nil {
		return err
	}
	e.value(RecordTagType, uint32(v.TagType))
	e.flag(RecordIsTypedef, v.IsTypedef)
	e.commonBlocks(&v.Base)
	for i := range v.Members {
		e.member(&v.Members[i])
	}
	e.refs(v.Parents, meta.RelationParent)
	e.refs(v.VirtualParents, meta.RelationVirtualParent)
	for i := range v.Bases {
		e.baseRecord(&v.Bases[i])
	}
	if v.Template != nil {
		e.template(v.Template)
	}
	return e.scope(&v.Children)
}

func (e *encoder) baseRecord(v *meta.BaseRecord) {
	e.w.EnterBlock(uint32(BlockBaseRecord))
	defer e.w.EndBlock()
	e.usr(BaseRecordUSR, v.ID)
	e.str(BaseRecordName, v.Name)
	e.str(BaseRecordPath, v.Path)
	e.value(BaseRecordTagType, uint32(v.TagType))
	e.flag(BaseRecordIsVirtual, v.IsVirtual)
	e.value(BaseRecordAccess, uint32(v.Access))
	e.flag(BaseRecordIsParent, v.IsParent)
	for i := range v.Members {
		e.member(&v.Members[i])
	}
}

func (e *encoder) function(v *meta.Function) error {
	e.w.EnterBlock(uint32(BlockFunction))
	defer e.w.EndBlock()
	if err := e.common(&v.Base, functionCommon); err != nil {
		return err
	}
	e.value(FunctionAccess, uint32(v.Access))
	e.flag(FunctionIsMethod, v.IsMethod)
	e.commonBlocks(&v.Base)
	if v.Parent != nil {
		e.ref(*v.Parent, meta.RelationParent)
	}
	if v.ReturnType != nil {
		e.typeInfo(v.ReturnType)
	}
	for i := range v.Params {
		e.fieldType(&v.Params[i])
	}
	if v.Template != nil {
		e.template(v.Template)
	}
	return nil
}

func (e *encoder) enum(v *meta.Enum) error {
	e.w.EnterBlock(uint32(BlockEnum))
	defer e.w.EndBlock()
	if err := e.common(&v.Base, enumCommon); err != nil {
		return err
	}
	e.flag(EnumScoped, v.Scoped)
	e.commonBlocks(&v.Base)
	if v.BaseType != nil {
		e.typeInfo(v.BaseType)
	}
	for _, m := range v.Members {
		e.w.EnterBlock(uint32(BlockEnumValue))
		e.str(EnumValueName, m.Name)
		e.str(EnumValueValue, m.Value)
		e.str(EnumValueExpr, m.Expr)
		e.w.EndBlock()
	}
	return nil
}

func (e *encoder) typedef(v *meta.Typedef) error {
	e.w.EnterBlock(uint32(BlockTypedef))
	defer e.w.EndBlock()
	if err := e.common(&v.Base, typedefCommon); err != nil {
		return err
	}
	e.flag(TypedefIsUsing, v.IsAlias)
	e.commonBlocks(&v.Base)
	if v.Underlying != nil {
		e.typeInfo(v.Underlying)
	}
	return nil
}

func (e *encoder) typeInfo(v *meta.TypeInfo) {
	e.w.EnterBlock(uint32(BlockType))
	e.ref(v.Type, meta.RelationType)
	e.w.EndBlock()
}

func (e *encoder) fieldType(v *meta.FieldType) {
	e.w.EnterBlock(uint32(BlockFieldType))
	e.str(FieldTypeName, v.Name)
	e.str(FieldTypeDefaultValue, v.DefaultValue)
	e.ref(v.Type, meta.RelationType)
	e.w.EndBlock()
}

func (e *encoder) member(v *meta.MemberType) {
	e.w.EnterBlock(uint32(BlockMemberType))
	e.str(MemberTypeName, v.Name)
	e.value(MemberTypeAccess, uint32(v.Access))
	e.ref(v.Type, meta.RelationType)
	if v.Doc != nil {
		e.javadoc(v.Doc)
	}
	e.w.EndBlock()
}

func (e *encoder) template(v *meta.Template) {
	e.w.EnterBlock(uint32(BlockTemplate))
	defer e.w.EndBlock()
	e.templateParams(v.Params)
	if s := v.Specialization; s != nil {
		e.w.EnterBlock(uint32(BlockTemplateSpecialization))
		e.usr(TemplateSpecializationOf, s.SpecializationOf)
		e.templateParams(s.Params)
		e.w.EndBlock()
	}
}

func (e *encoder) templateParams(params []meta.TemplateParam) {
	for _, p := range params {
		e.w.EnterBlock(uint32(BlockTemplateParam))
		e.str(TemplateParamContents, p.Contents)
		e.w.EndBlock()
	}
}

func (e *encoder) refs(refs []meta.Reference, rel meta.Relation) {
	for _, r := range refs {
		e.ref(r, rel)
	}
}

// ref writes a reference block; the relation is the slot being written.
func (e *encoder) ref(r meta.Reference, rel meta.Relation) {
	e.w.EnterBlock(uint32(BlockReference))
	e.usr(ReferenceUSR, r.ID)
	e.str(ReferenceName, r.Name)
	e.str(ReferencePath, r.Path)
	e.value(ReferenceType, uint32(r.Kind))
	e.record(ReferenceField, []uint64{uint64(rel)}, nil)
	e.w.EndBlock()
}

func (e *encoder) javadoc(d *javadoc.Javadoc) {
	e.w.EnterBlock(uint32(BlockJavadoc))
	defer e.w.EndBlock()

	if len(d.Blocks) > 0 {
		nodes := make([]javadoc.Node, len(d.Blocks))
		for i, b := range d.Blocks {
			nodes[i] = b
		}
		e.docList(javadoc.KindBlock, nodes)
	}
	if len(d.Params) > 0 {
		nodes := make([]javadoc.Node, len(d.Params))
		for i, p := range d.Params {
			nodes[i] = p
		}
		e.docList(javadoc.KindParam, nodes)
	}
	if len(d.TParams) > 0 {
		nodes := make([]javadoc.Node, len(d.TParams))
		for i, p := range d.TParams {
			nodes[i] = p
		}
		e.docList(javadoc.KindTParam, nodes)
	}
	if d.Returns != nil {
		e.docNode(d.Returns)
	}
}

func (e *encoder) docList(kind javadoc.NodeKind, nodes []javadoc.Node) {
	e.w.EnterBlock(uint32(BlockJavadocList))
	e.record(JavadocListKind, []uint64{uint64(kind)}, nil)
	for _, n := range nodes {
		e.docNode(n)
	}
	e.w.EndBlock()
}

func (e *encoder) docNode(n javadoc.Node) {
	e.w.EnterBlock(uint32(BlockJavadocNode))
	defer e.w.EndBlock()
	e.record(JavadocNodeKind, []uint64{uint64(n.Kind())}, nil)

	var children []javadoc.Inline
	switch v := n.(type) {
	case *javadoc.Text:
		e.str(JavadocNodeString, v.String)
	case *javadoc.StyledText:
		e.str(JavadocNodeString, v.String)
		e.record(JavadocNodeStyle, []uint64{uint64(v.Style)}, nil)
	case *javadoc.Admonition:
		e.record(JavadocNodeAdmonish, []uint64{uint64(v.Style)}, nil)
		children = v.Children
	case *javadoc.Param:
		e.str(JavadocNodeString, v.Name)
		children = v.Children
	case *javadoc.TParam:
		e.str(JavadocNodeString, v.Name)
		children = v.Children
	case *javadoc.Returns:
		children = v.Children
	case javadoc.Block:
		children = v.Inlines()
	}

	if len(children) > 0 {
		nodes := make([]javadoc.Node, len(children))
		for i, c := range children {
			nodes[i] = c
		}
		e.docList(javadoc.KindText, nodes)
	}
}
