package bitcode

import (
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/meta"
)

// attach places a decoded child into its slot on owner. The pairings below
// are the complete schema; anything else is an invalid attachment.
func attach(owner, child any) error {
	switch o := owner.(type) {
	case *meta.Namespace:
		switch c := child.(type) {
		case *javadoc.Javadoc:
			return attachDoc(&o.Doc, c)
		case *meta.Reference:
			switch c.Relation {
			case meta.RelationNamespace:
				o.Namespace = append(o.Namespace, *c)
				return nil
			case meta.RelationChildNamespace:
				o.Children.Namespaces = append(o.Children.Namespaces, *c)
				return nil
			case meta.RelationChildRecord:
				o.Children.Records = append(o.Children.Records, *c)
				return nil
			case meta.RelationChildFunction:
				o.Children.Functions = append(o.Children.Functions, *c)
				return nil
			}
		case *meta.Enum:
			o.Children.Enums = append(o.Children.Enums, c)
			return nil
		case *meta.Typedef:
			o.Children.Typedefs = append(o.Children.Typedefs, c)
			return nil
		}

	case *meta.Record:
		switch c := child.(type) {
		case *javadoc.Javadoc:
			return attachDoc(&o.Doc, c)
		case *meta.MemberType:
			o.Members = append(o.Members, *c)
			return nil
		case *meta.Reference:
			switch c.Relation {
			case meta.RelationNamespace:
				o.Namespace = append(o.Namespace, *c)
				return nil
			case meta.RelationParent:
				o.Parents = append(o.Parents, *c)
				return nil
			case meta.RelationVirtualParent:
				o.VirtualParents = append(o.VirtualParents, *c)
				return nil
			case meta.RelationChildRecord:
				o.Children.Records = append(o.Children.Records, *c)
				return nil
			case meta.RelationChildFunction:
				o.Children.Functions = append(o.Children.Functions, *c)
				return nil
			}
		case *meta.BaseRecord:
			o.Bases = append(o.Bases, *c)
			return nil
		case *meta.Enum:
			o.Children.Enums = append(o.Children.Enums, c)
			return nil
		case *meta.Typedef:
			o.Children.Typedefs = append(o.Children.Typedefs, c)
			return nil
		case *meta.Template:
			o.Template = c
			return nil
		}

	case *meta.BaseRecord:
		if c, ok := child.(*meta.MemberType); ok {
			o.Members = append(o.Members, *c)
			return nil
		}

	case *meta.Function:
		switch c := child.(type) {
		case *javadoc.Javadoc:
			return attachDoc(&o.Doc, c)
		case *meta.TypeInfo:
			o.ReturnType = c
			return nil
		case *meta.FieldType:
			o.Params = append(o.Params, *c)
			return nil
		case *meta.Reference:
			switch c.Relation {
			case meta.RelationNamespace:
				o.Namespace = append(o.Namespace, *c)
				return nil
			case meta.RelationParent:
				o.Parent = c
				return nil
			}
		case *meta.Template:
			o.Template = c
			return nil
		}

	case *meta.Enum:
		switch c := child.(type) {
		case *javadoc.Javadoc:
			return attachDoc(&o.Doc, c)
		case *meta.TypeInfo:
			o.BaseType = c
			return nil
		case *meta.EnumValue:
			o.Members = append(o.Members, *c)
			return nil
		case *meta.Reference:
			if c.Relation == meta.RelationNamespace {
				o.Namespace = append(o.Namespace, *c)
				return nil
			}
		}

	case *meta.Typedef:
		switch c := child.(type) {
		case *javadoc.Javadoc:
			return attachDoc(&o.Doc, c)
		case *meta.TypeInfo:
			o.Underlying = c
			return nil
		case *meta.Reference:
			if c.Relation == meta.RelationNamespace {
				o.Namespace = append(o.Namespace, *c)
				return nil
			}
		}

	case *meta.TypeInfo:
		if c, ok := child.(*meta.Reference); ok && c.Relation == meta.RelationType {
			o.Type = *c
			return nil
		}

	case *meta.FieldType:
		if c, ok := child.(*meta.Reference); ok && c.Relation == meta.RelationType {
			o.Type = *c
			return nil
		}

	case *meta.MemberType:
		switch c := child.(type) {
		case *meta.Reference:
			if c.Relation == meta.RelationType {
				o.Type = *c
				return nil
			}
		case *javadoc.Javadoc:
			return attachDoc(&o.Doc, c)
		}

	case *meta.Template:
		switch c := child.(type) {
		case *meta.TemplateSpecialization:
			o.Specialization = c
			return nil
		case *meta.TemplateParam:
			o.Params = append(o.Params, *c)
			return nil
		}

	case *meta.TemplateSpecialization:
		if c, ok := child.(*meta.TemplateParam); ok {
			o.Params = append(o.Params, *c)
			return nil
		}
	}

	return errors.InvalidAttachment(valueName(owner), valueName(child))
}

// attachDoc merges a decoded comment into the owner's slot. A symbol may
// carry several comment blocks but only one returns node overall.
func attachDoc(slot **javadoc.Javadoc, doc *javadoc.Javadoc) error {
	if *slot == nil {
		*slot = doc
		return nil
	}
	if (*slot).Returns != nil && doc.Returns != nil {
		return errors.TooManyReturns(nil)
	}
	(*slot).Merge(doc)
	return nil
}

// valueName names a decoded value by the block it comes from.
func valueName(v any) string {
	switch c := v.(type) {
	case *meta.Namespace:
		return BlockNamespace.String()
	case *meta.Record:
		return BlockRecord.String()
	case *meta.BaseRecord:
		return BlockBaseRecord.String()
	case *meta.Function:
		return BlockFunction.String()
	case *meta.Enum:
		return BlockEnum.String()
	case *meta.EnumValue:
		return BlockEnumValue.String()
	case *meta.Typedef:
		return BlockTypedef.String()
	case *meta.TypeInfo:
		return BlockType.String()
	case *meta.FieldType:
		return BlockFieldType.String()
	case *meta.MemberType:
		return BlockMemberType.String()
	case *meta.Reference:
		return BlockReference.String() + "(" + c.Relation.String() + ")"
	case *meta.Template:
		return BlockTemplate.String()
	case *meta.TemplateSpecialization:
		return BlockTemplateSpecialization.String()
	case *meta.TemplateParam:
		return BlockTemplateParam.String()
	case *javadoc.Javadoc:
		return BlockJavadoc.String()
	case BlockID:
		return c.String()
	}
	return "unknown"
}
