package bitcode

import (
	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
)

// commonRecords lists the record ids an entity block uses for its Base.
type commonRecords struct {
	usr, name, path, defLoc, loc RecordID
}

var (
	namespaceCommon = commonRecords{NamespaceUSR, NamespaceName, NamespacePath, NamespaceDefLocation, NamespaceLocation}
	recordCommon    = commonRecords{RecordUSR, RecordName, RecordPath, RecordDefLocation, RecordLocation}
	functionCommon  = commonRecords{FunctionUSR, FunctionName, FunctionPath, FunctionDefLocation, FunctionLocation}
	enumCommon      = commonRecords{EnumUSR, EnumName, EnumPath, EnumDefLocation, EnumLocation}
	typedefCommon   = commonRecords{TypedefUSR, TypedefName, TypedefPath, TypedefDefLocation, TypedefLocation}
)

// parseCommon handles the records shared by every entity. It reports
// whether rec was one of them.
func parseCommon(b *meta.Base, ids commonRecords, rec bitstream.Record) (bool, error) {
	switch RecordID(rec.ID) {
	case ids.usr:
		return true, decodeSymbolID(rec, &b.ID)
	case ids.name:
		return true, decodeString(rec, &b.Name)
	case ids.path:
		return true, decodeString(rec, &b.Path)
	case ids.defLoc:
		var loc meta.Location
		if err := decodeLocation(rec, &loc); err != nil {
			return true, err
		}
		b.DefLoc = &loc
		return true, nil
	case ids.loc:
		var loc meta.Location
		if err := decodeLocation(rec, &loc); err != nil {
			return true, err
		}
		b.Loc = append(b.Loc, loc)
		return true, nil
	}
	return false, nil
}

// parseRecord decodes one record into the value being built for the
// enclosing block. Records are applied strictly in stream order.
func parseRecord(owner any, rec bitstream.Record) error {
	switch o := owner.(type) {
	case *meta.Namespace:
		if ok, err := parseCommon(&o.Base, namespaceCommon, rec); ok {
			return err
		}
	case *meta.Record:
		if ok, err := parseCommon(&o.Base, recordCommon, rec); ok {
			return err
		}
		switch RecordID(rec.ID) {
		case RecordTagType:
			return decodeEnum(rec, "tag_type", &o.TagType)
		case RecordIsTypedef:
			return decodeBool(rec, &o.IsTypedef)
		}
	case *meta.BaseRecord:
		switch RecordID(rec.ID) {
		case BaseRecordUSR:
			return decodeSymbolID(rec, &o.ID)
		case BaseRecordName:
			return decodeString(rec, &o.Name)
		case BaseRecordPath:
			return decodeString(rec, &o.Path)
		case BaseRecordTagType:
			return decodeEnum(rec, "tag_type", &o.TagType)
		case BaseRecordIsVirtual:
			return decodeBool(rec, &o.IsVirtual)
		case BaseRecordAccess:
			return decodeEnum(rec, "access", &o.Access)
		case BaseRecordIsParent:
			return decodeBool(rec, &o.IsParent)
		}
	case *meta.Function:
		if ok, err := parseCommon(&o.Base, functionCommon, rec); ok {
			return err
		}
		switch RecordID(rec.ID) {
		case FunctionAccess:
			return decodeEnum(rec, "access", &o.Access)
		case FunctionIsMethod:
			return decodeBool(rec, &o.IsMethod)
		}
	case *meta.Enum:
		if ok, err := parseCommon(&o.Base, enumCommon, rec); ok {
			return err
		}
		if RecordID(rec.ID) == EnumScoped {
			return decodeBool(rec, &o.Scoped)
		}
	case *meta.EnumValue:
		switch RecordID(rec.ID) {
		case EnumValueName:
			return decodeString(rec, &o.Name)
		case EnumValueValue:
			return decodeString(rec, &o.Value)
		case EnumValueExpr:
			return decodeString(rec, &o.Expr)
		}
	case *meta.Typedef:
		if ok, err := parseCommon(&o.Base, typedefCommon, rec); ok {
			return err
		}
		if RecordID(rec.ID) == TypedefIsUsing {
			return decodeBool(rec, &o.IsAlias)
		}
	case *meta.TypeInfo:
		// a type block only holds its reference
	case *meta.FieldType:
		switch RecordID(rec.ID) {
		case FieldTypeName:
			return decodeString(rec, &o.Name)
		case FieldTypeDefaultValue:
			return decodeString(rec, &o.DefaultValue)
		}
	case *meta.MemberType:
		switch RecordID(rec.ID) {
		case MemberTypeName:
			return decodeString(rec, &o.Name)
		case MemberTypeAccess:
			return decodeEnum(rec, "access", &o.Access)
		}
	case *meta.Reference:
		switch RecordID(rec.ID) {
		case ReferenceUSR:
			return decodeSymbolID(rec, &o.ID)
		case ReferenceName:
			return decodeString(rec, &o.Name)
		case ReferencePath:
			return decodeString(rec, &o.Path)
		case ReferenceType:
			return decodeEnum(rec, "info_type", &o.Kind)
		case ReferenceField:
			return decodeEnum(rec, "field_id", &o.Relation)
		}
	case *meta.Template:
		// params and specialization arrive as sub-blocks
	case *meta.TemplateSpecialization:
		if RecordID(rec.ID) == TemplateSpecializationOf {
			return decodeSymbolID(rec, &o.SpecializationOf)
		}
	case *meta.TemplateParam:
		if RecordID(rec.ID) == TemplateParamContents {
			return decodeString(rec, &o.Contents)
		}
	}
	return errors.New(errors.PhaseDecode, errors.KindMalformedStream).
		Value(rec.ID).
		Detail("unexpected record %d in %s block", rec.ID, valueName(owner)).
		Build()
}
