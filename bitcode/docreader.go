package bitcode

import (
	"github.com/wippyai/doccorpus/bitcode/internal/bitstream"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/javadoc"
)

// listFrame accumulates the nodes of one open javadoc list block.
type listFrame struct {
	owner javadoc.Node // node the list belongs to; nil for the comment itself
	nodes []javadoc.Node
	kind  javadoc.NodeKind // zero when the list declares no kind
}

// docParser is the state of one javadoc block decode. Open list frames
// live on an explicit stack passed down through the recursive reads.
type docParser struct {
	doc   *javadoc.Javadoc
	stack []*listFrame
}

func (p *docParser) push(owner javadoc.Node) *listFrame {
	f := &listFrame{owner: owner}
	p.stack = append(p.stack, f)
	return f
}

func (p *docParser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

// readJavadoc decodes a javadoc block that has just been entered.
func (d *decoder) readJavadoc() (*javadoc.Javadoc, error) {
	p := &docParser{doc: &javadoc.Javadoc{}}
	for {
		start := d.c.Position()
		code, err := d.c.ReadCode()
		if err != nil {
			return nil, err
		}
		switch code {
		case bitstream.CodeEndBlock:
			return p.doc, nil
		case bitstream.CodeUnabbrevRecord:
			rec, err := d.c.ReadRecord()
			if err != nil {
				return nil, err
			}
			return nil, withOffset(unexpectedRecord(rec, BlockJavadoc), start)
		case bitstream.CodeEnterSubblock:
			id, err := d.c.ReadBlockID()
			if err != nil {
				return nil, err
			}
			switch BlockID(id) {
			case BlockJavadocList:
				if err := d.nested(BlockJavadocList, func() error { return d.readDocList(p, nil) }); err != nil {
					return nil, err
				}
			case BlockJavadocNode:
				var node javadoc.Node
				if err := d.nested(BlockJavadocNode, func() (err error) {
					node, err = d.readDocNode(p)
					return err
				}); err != nil {
					return nil, err
				}
				if node == nil {
					continue
				}
				r, ok := node.(*javadoc.Returns)
				if !ok {
					return nil, withOffset(errors.InvalidAttachment("javadoc", node.Kind().String()), start)
				}
				if err := p.setReturns(r); err != nil {
					return nil, withOffset(err, start)
				}
			default:
				return nil, d.skipUnexpected("javadoc", BlockID(id), start)
			}
		}
	}
}

// readDocList decodes a list block for owner and hands its nodes over when
// the block closes.
func (d *decoder) readDocList(p *docParser, owner javadoc.Node) error {
	depth := len(p.stack)
	f := p.push(owner)
	defer func() { p.stack = p.stack[:depth] }()

	for {
		start := d.c.Position()
		code, err := d.c.ReadCode()
		if err != nil {
			return err
		}
		switch code {
		case bitstream.CodeEndBlock:
			p.pop()
			return withOffset(p.closeList(f), start)
		case bitstream.CodeUnabbrevRecord:
			rec, err := d.c.ReadRecord()
			if err != nil {
				return err
			}
			if RecordID(rec.ID) != JavadocListKind {
				return withOffset(unexpectedRecord(rec, BlockJavadocList), start)
			}
			if err := needFields(rec, 1); err != nil {
				return withOffset(err, start)
			}
			if f.kind != 0 {
				return errors.Malformed(start, "list kind set twice")
			}
			k := rec.Fields[0]
			if !validListKind(k) {
				return withOffset(errors.InvalidEnumValue([]string{"list_kind"}, k, "list_kind"), start)
			}
			f.kind = javadoc.NodeKind(k)
		case bitstream.CodeEnterSubblock:
			id, err := d.c.ReadBlockID()
			if err != nil {
				return err
			}
			if BlockID(id) != BlockJavadocNode {
				return d.skipUnexpected(BlockJavadocList.String(), BlockID(id), start)
			}
			var node javadoc.Node
			if err := d.nested(BlockJavadocNode, func() (err error) {
				node, err = d.readDocNode(p)
				return err
			}); err != nil {
				return err
			}
			if node != nil {
				f.nodes = append(f.nodes, node)
			}
		}
	}
}

// readDocNode decodes one node block. The kind record must come before any
// attribute record; a node without a kind decodes to nil.
func (d *decoder) readDocNode(p *docParser) (javadoc.Node, error) {
	var node javadoc.Node
	sawList := false
	for {
		start := d.c.Position()
		code, err := d.c.ReadCode()
		if err != nil {
			return nil, err
		}
		switch code {
		case bitstream.CodeEndBlock:
			return node, nil
		case bitstream.CodeUnabbrevRecord:
			rec, err := d.c.ReadRecord()
			if err != nil {
				return nil, err
			}
			if node, err = parseNodeRecord(node, rec); err != nil {
				return nil, withOffset(err, start)
			}
		case bitstream.CodeEnterSubblock:
			id, err := d.c.ReadBlockID()
			if err != nil {
				return nil, err
			}
			if BlockID(id) != BlockJavadocList {
				return nil, d.skipUnexpected(BlockJavadocNode.String(), BlockID(id), start)
			}
			if node == nil || isInline(node) {
				owner := "untyped node"
				if node != nil {
					owner = node.Kind().String()
				}
				return nil, d.skipUnexpected(owner, BlockJavadocList, start)
			}
			if sawList {
				return nil, errors.Malformed(start, "%s node has more than one child list", node.Kind())
			}
			sawList = true
			if err := d.nested(BlockJavadocList, func() error { return d.readDocList(p, node) }); err != nil {
				return nil, err
			}
		}
	}
}

// parseNodeRecord applies one record to the node being decoded and returns
// the node, which is created by the kind record.
func parseNodeRecord(node javadoc.Node, rec bitstream.Record) (javadoc.Node, error) {
	if RecordID(rec.ID) == JavadocNodeKind {
		if node != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindMalformedStream).
				Detail("node kind set twice").
				Build()
		}
		var k javadoc.NodeKind
		if err := decodeEnum(rec, "node_kind", &k); err != nil {
			return nil, err
		}
		return newDocNode(k), nil
	}

	if node == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformedStream).
			Value(rec.ID).
			Detail("record %d before node kind", rec.ID).
			Build()
	}

	switch RecordID(rec.ID) {
	case JavadocNodeString:
		switch n := node.(type) {
		case *javadoc.Text:
			n.String = string(rec.Blob)
			return node, nil
		case *javadoc.StyledText:
			n.String = string(rec.Blob)
			return node, nil
		case *javadoc.Param:
			n.Name = string(rec.Blob)
			return node, nil
		case *javadoc.TParam:
			n.Name = string(rec.Blob)
			return node, nil
		}
	case JavadocNodeStyle:
		if n, ok := node.(*javadoc.StyledText); ok {
			return node, decodeEnum(rec, "style", &n.Style)
		}
	case JavadocNodeAdmonish:
		if n, ok := node.(*javadoc.Admonition); ok {
			return node, decodeEnum(rec, "admonish", &n.Style)
		}
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindMalformedStream).
		Value(rec.ID).
		Detail("record %d not valid for %s node", rec.ID, node.Kind()).
		Build()
}

func newDocNode(k javadoc.NodeKind) javadoc.Node {
	switch k {
	case javadoc.KindText:
		return &javadoc.Text{}
	case javadoc.KindStyled:
		return &javadoc.StyledText{Style: javadoc.StyleNone}
	case javadoc.KindParagraph:
		return &javadoc.Paragraph{}
	case javadoc.KindBrief:
		return &javadoc.Brief{}
	case javadoc.KindAdmonition:
		return &javadoc.Admonition{Style: javadoc.AdmonishNone}
	case javadoc.KindCode:
		return &javadoc.Code{}
	case javadoc.KindParam:
		return &javadoc.Param{}
	case javadoc.KindTParam:
		return &javadoc.TParam{}
	case javadoc.KindReturns:
		return &javadoc.Returns{}
	}
	return nil
}

// validListKind reports whether k names a family a list can hold: inline
// text, blocks, params, tparams or returns.
func validListKind(k uint64) bool {
	switch k {
	case uint64(javadoc.KindText), uint64(javadoc.KindBlock), uint64(javadoc.KindParam),
		uint64(javadoc.KindTParam), uint64(javadoc.KindReturns):
		return true
	}
	return false
}

func listAccepts(kind javadoc.NodeKind, n javadoc.Node) bool {
	switch kind {
	case 0:
		return true
	case javadoc.KindText:
		return isInline(n)
	case javadoc.KindBlock:
		_, ok := n.(javadoc.Block)
		return ok
	}
	return n.Kind() == kind
}

func isInline(n javadoc.Node) bool {
	_, ok := n.(javadoc.Inline)
	return ok
}

// closeList hands the nodes of a finished list to the comment, when the list
// is top-level, or to the node that owns it.
func (p *docParser) closeList(f *listFrame) error {
	for _, n := range f.nodes {
		if !listAccepts(f.kind, n) {
			return errors.InvalidAttachment(f.kind.String()+" list", n.Kind().String())
		}
	}
	if f.owner == nil {
		for _, n := range f.nodes {
			if err := p.addTopLevel(n); err != nil {
				return err
			}
		}
		return nil
	}

	children := make([]javadoc.Inline, 0, len(f.nodes))
	for _, n := range f.nodes {
		in, ok := n.(javadoc.Inline)
		if !ok {
			return errors.InvalidAttachment(f.owner.Kind().String(), n.Kind().String())
		}
		children = append(children, in)
	}
	switch o := f.owner.(type) {
	case *javadoc.Paragraph:
		o.Children = children
	case *javadoc.Brief:
		o.Children = children
	case *javadoc.Admonition:
		o.Children = children
	case *javadoc.Code:
		o.Children = children
	case *javadoc.Param:
		o.Children = children
	case *javadoc.TParam:
		o.Children = children
	case *javadoc.Returns:
		o.Children = children
	default:
		return errors.InvalidAttachment(f.owner.Kind().String(), BlockJavadocList.String())
	}
	return nil
}

func (p *docParser) addTopLevel(n javadoc.Node) error {
	switch v := n.(type) {
	case javadoc.Block:
		p.doc.Blocks = append(p.doc.Blocks, v)
	case *javadoc.Param:
		p.doc.Params = append(p.doc.Params, v)
	case *javadoc.TParam:
		p.doc.TParams = append(p.doc.TParams, v)
	case *javadoc.Returns:
		return p.setReturns(v)
	default:
		return errors.InvalidAttachment("javadoc", n.Kind().String())
	}
	return nil
}

func (p *docParser) setReturns(r *javadoc.Returns) error {
	if p.doc.Returns != nil {
		return errors.TooManyReturns(nil)
	}
	p.doc.Returns = r
	return nil
}

func unexpectedRecord(rec bitstream.Record, block BlockID) error {
	return errors.New(errors.PhaseDecode, errors.KindMalformedStream).
		Value(rec.ID).
		Detail("unexpected record %d in %s block", rec.ID, block).
		Build()
}
