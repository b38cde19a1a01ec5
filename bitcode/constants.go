package bitcode

import "strconv"

// Version is the container schema version this package reads and writes.
const Version uint64 = 3

// BlockID identifies a block in the container.
type BlockID uint32

// Block IDs. Entity blocks, the version block and block-info are legal at
// top level; every other block is legal only nested in an owner.
const (
	BlockInfo                   BlockID = 0 // reserved metadata, skipped
	BlockVersion                BlockID = 8
	BlockNamespace              BlockID = 9
	BlockEnum                   BlockID = 10
	BlockEnumValue              BlockID = 11
	BlockType                   BlockID = 12
	BlockFieldType              BlockID = 13
	BlockMemberType             BlockID = 14
	BlockRecord                 BlockID = 15
	BlockBaseRecord             BlockID = 16
	BlockFunction               BlockID = 17
	BlockJavadoc                BlockID = 18
	BlockJavadocList            BlockID = 19
	BlockJavadocNode            BlockID = 20
	BlockReference              BlockID = 21
	BlockTemplate               BlockID = 22
	BlockTemplateSpecialization BlockID = 23
	BlockTemplateParam          BlockID = 24
	BlockTypedef                BlockID = 25
)

var blockNames = map[BlockID]string{
	BlockInfo:                   "blockinfo",
	BlockVersion:                "version",
	BlockNamespace:              "namespace",
	BlockEnum:                   "enum",
	BlockEnumValue:              "enum_value",
	BlockType:                   "type",
	BlockFieldType:              "field_type",
	BlockMemberType:             "member_type",
	BlockRecord:                 "record",
	BlockBaseRecord:             "base_record",
	BlockFunction:               "function",
	BlockJavadoc:                "javadoc",
	BlockJavadocList:            "javadoc_list",
	BlockJavadocNode:            "javadoc_node",
	BlockReference:              "reference",
	BlockTemplate:               "template",
	BlockTemplateSpecialization: "template_specialization",
	BlockTemplateParam:          "template_param",
	BlockTypedef:                "typedef",
}

func (b BlockID) String() string {
	if name, ok := blockNames[b]; ok {
		return name
	}
	return "block_" + strconv.FormatUint(uint64(b), 10)
}

// RecordID identifies a record. Record IDs are unique across all blocks.
type RecordID uint32

const (
	RecordVersion RecordID = iota + 1

	NamespaceUSR
	NamespaceName
	NamespacePath
	NamespaceDefLocation
	NamespaceLocation

	EnumUSR
	EnumName
	EnumPath
	EnumDefLocation
	EnumLocation
	EnumScoped

	EnumValueName
	EnumValueValue
	EnumValueExpr

	FieldTypeName
	FieldTypeDefaultValue

	MemberTypeName
	MemberTypeAccess

	RecordUSR
	RecordName
	RecordPath
	RecordDefLocation
	RecordLocation
	RecordTagType
	RecordIsTypedef

	BaseRecordUSR
	BaseRecordName
	BaseRecordPath
	BaseRecordTagType
	BaseRecordIsVirtual
	BaseRecordAccess
	BaseRecordIsParent

	FunctionUSR
	FunctionName
	FunctionPath
	FunctionDefLocation
	FunctionLocation
	FunctionAccess
	FunctionIsMethod

	JavadocListKind
	JavadocNodeKind
	JavadocNodeString
	JavadocNodeStyle
	JavadocNodeAdmonish

	ReferenceUSR
	ReferenceName
	ReferencePath
	ReferenceType
	ReferenceField

	TemplateParamContents
	TemplateSpecializationOf

	TypedefUSR
	TypedefName
	TypedefPath
	TypedefDefLocation
	TypedefLocation
	TypedefIsUsing
)
