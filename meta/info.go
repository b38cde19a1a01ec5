package meta

import (
	"strings"

	"github.com/wippyai/doccorpus/javadoc"
)

// Location is one source position of a declaration.
type Location struct {
	Filename     string
	Line         int
	IsDefinition bool
}

// Reference points at another entity by identifier and carries enough of it
// to be displayed without a lookup.
type Reference struct {
	Name     string
	Path     string
	ID       SymbolID
	Kind     InfoKind
	Relation Relation
}

// Info is implemented by every entity kind.
type Info interface {
	Common() *Base
	Kind() InfoKind
}

// Base holds the fields every entity has.
type Base struct {
	DefLoc    *Location
	Doc       *javadoc.Javadoc
	Name      string
	Path      string
	Namespace []Reference // enclosing scopes, innermost first
	Loc       []Location
	ID        SymbolID
}

// Common returns b itself; it lets every entity satisfy Info through embedding.
func (b *Base) Common() *Base {
	return b
}

// Scope lists the children of a namespace or record. Namespaces, records
// and functions are referenced; enums and typedefs are owned.
type Scope struct {
	Namespaces []Reference
	Records    []Reference
	Functions  []Reference
	Enums      []*Enum
	Typedefs   []*Typedef
}

// Empty reports whether the scope has no children.
func (s *Scope) Empty() bool {
	return len(s.Namespaces) == 0 && len(s.Records) == 0 && len(s.Functions) == 0 &&
		len(s.Enums) == 0 && len(s.Typedefs) == 0
}

// TypeInfo names a type by reference.
type TypeInfo struct {
	Type Reference
}

// FieldType is a named, typed slot such as a function parameter.
type FieldType struct {
	Name         string
	DefaultValue string
	Type         Reference
}

// MemberType is a data member of a record.
type MemberType struct {
	Doc *javadoc.Javadoc
	FieldType
	Access Access
}

// TemplateParam is one template parameter as written.
type TemplateParam struct {
	Contents string
}

// TemplateSpecialization marks a template as a specialization of another.
type TemplateSpecialization struct {
	Params           []TemplateParam
	SpecializationOf SymbolID
}

// Template carries template parameters of a record or function.
type Template struct {
	Specialization *TemplateSpecialization
	Params         []TemplateParam
}

// Namespace is a named scope.
type Namespace struct {
	Children Scope
	Base
}

// Kind implements Info.
func (*Namespace) Kind() InfoKind { return KindNamespace }

// BaseRecord is one entry of a record's base-class list.
type BaseRecord struct {
	Name      string
	Path      string
	Members   []MemberType
	ID        SymbolID
	TagType   TagType
	Access    Access
	IsVirtual bool
	IsParent  bool
}

// Record is a struct, class, union or interface.
type Record struct {
	Template       *Template
	Members        []MemberType
	Parents        []Reference
	VirtualParents []Reference
	Bases          []BaseRecord
	Children       Scope
	Base
	TagType   TagType
	IsTypedef bool
}

// Kind implements Info.
func (*Record) Kind() InfoKind { return KindRecord }

// Function is a free function or method.
type Function struct {
	Parent     *Reference
	ReturnType *TypeInfo
	Template   *Template
	Params     []FieldType
	Base
	Access   Access
	IsMethod bool
}

// Kind implements Info.
func (*Function) Kind() InfoKind { return KindFunction }

// EnumValue is one enumerator.
type EnumValue struct {
	Name  string
	Value string
	Expr  string
}

// Enum is an enumeration.
type Enum struct {
	BaseType *TypeInfo
	Members  []EnumValue
	Base
	Scoped bool
}

// Kind implements Info.
func (*Enum) Kind() InfoKind { return KindEnum }

// Typedef is a typedef or alias declaration.
type Typedef struct {
	Underlying *TypeInfo
	Base
	IsAlias bool
}

// Kind implements Info.
func (*Typedef) Kind() InfoKind { return KindTypedef }

// QualifiedName joins the path and name with "::", or returns the bare name
// when the path is empty.
func QualifiedName(info Info) string {
	b := info.Common()
	if b.Path == "" {
		return b.Name
	}
	return b.Path + "::" + b.Name
}

// JoinPath builds a scope path from enclosing namespace references,
// outermost first.
func JoinPath(namespaces []Reference) string {
	parts := make([]string, 0, len(namespaces))
	for i := len(namespaces) - 1; i >= 0; i-- {
		parts = append(parts, namespaces[i].Name)
	}
	return strings.Join(parts, "::")
}

// RefTo builds a reference to info with the given relation.
func RefTo(info Info, rel Relation) Reference {
	b := info.Common()
	return Reference{
		ID:       b.ID,
		Name:     b.Name,
		Path:     b.Path,
		Kind:     info.Kind(),
		Relation: rel,
	}
}

// NewInfo allocates an empty entity of kind k, or returns nil for kinds that
// have no entity.
func NewInfo(k InfoKind) Info {
	switch k {
	case KindNamespace:
		return &Namespace{}
	case KindRecord:
		return &Record{}
	case KindFunction:
		return &Function{}
	case KindEnum:
		return &Enum{}
	case KindTypedef:
		return &Typedef{}
	}
	return nil
}
