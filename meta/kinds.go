package meta

// InfoKind tags which entity variant a value is.
type InfoKind uint32

const (
	KindDefault InfoKind = iota
	KindNamespace
	KindRecord
	KindFunction
	KindEnum
	KindTypedef
)

func (k InfoKind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindNamespace:
		return "namespace"
	case KindRecord:
		return "record"
	case KindFunction:
		return "function"
	case KindEnum:
		return "enum"
	case KindTypedef:
		return "typedef"
	}
	return "unknown"
}

// Valid reports whether k is a known discriminant.
func (k InfoKind) Valid() bool {
	return k <= KindTypedef
}

// ParseInfoKind returns the entity kind named s, as printed by String.
func ParseInfoKind(s string) (InfoKind, bool) {
	for k := KindNamespace; k <= KindTypedef; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindDefault, false
}

// Relation names the slot of its owner that a Reference fills.
type Relation uint32

const (
	RelationDefault Relation = iota
	RelationNamespace
	RelationParent
	RelationVirtualParent
	RelationType
	RelationChildNamespace
	RelationChildRecord
	RelationChildFunction
)

func (r Relation) String() string {
	switch r {
	case RelationDefault:
		return "default"
	case RelationNamespace:
		return "namespace"
	case RelationParent:
		return "parent"
	case RelationVirtualParent:
		return "vparent"
	case RelationType:
		return "type"
	case RelationChildNamespace:
		return "child_namespace"
	case RelationChildRecord:
		return "child_record"
	case RelationChildFunction:
		return "child_function"
	}
	return "unknown"
}

// Valid reports whether r is a known discriminant.
func (r Relation) Valid() bool {
	return r <= RelationChildFunction
}

// Access is a member access specifier.
type Access uint32

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
	AccessNone
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	case AccessNone:
		return "none"
	}
	return "unknown"
}

// Valid reports whether a is a known discriminant.
func (a Access) Valid() bool {
	return a <= AccessNone
}

// TagType is the keyword a record was declared with.
type TagType uint32

const (
	TagStruct TagType = iota
	TagInterface
	TagUnion
	TagClass
	TagEnum
)

func (t TagType) String() string {
	switch t {
	case TagStruct:
		return "struct"
	case TagInterface:
		return "interface"
	case TagUnion:
		return "union"
	case TagClass:
		return "class"
	case TagEnum:
		return "enum"
	}
	return "unknown"
}

// Valid reports whether t is a known discriminant.
func (t TagType) Valid() bool {
	return t <= TagEnum
}
