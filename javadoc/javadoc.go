// Package javadoc models documentation comments as closed node families.
//
// Inline nodes (Text, StyledText) carry text. Block nodes (Paragraph, Brief,
// Admonition, Code) own an ordered list of inline children. Param, TParam and
// Returns are paragraph-like nodes held in their own slots of a Javadoc.
package javadoc

import "strings"

// NodeKind is the discriminant of a documentation node.
type NodeKind uint32

const (
	KindText NodeKind = iota + 1
	KindStyled
	KindBlock // abstract, never decoded
	KindParagraph
	KindBrief
	KindAdmonition
	KindCode
	KindParam
	KindTParam
	KindReturns
)

var kindNames = [...]string{
	KindText:       "text",
	KindStyled:     "styled",
	KindBlock:      "block",
	KindParagraph:  "paragraph",
	KindBrief:      "brief",
	KindAdmonition: "admonition",
	KindCode:       "code",
	KindParam:      "param",
	KindTParam:     "tparam",
	KindReturns:    "returns",
}

func (k NodeKind) String() string {
	if k >= KindText && k <= KindReturns {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is a decodable node kind.
func (k NodeKind) Valid() bool {
	return k >= KindText && k <= KindReturns && k != KindBlock
}

// Style is the emphasis of a StyledText.
type Style uint32

const (
	StyleNone Style = iota + 1
	StyleMono
	StyleBold
	StyleItalic
)

func (s Style) String() string {
	switch s {
	case StyleNone:
		return "none"
	case StyleMono:
		return "mono"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	}
	return "unknown"
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s >= StyleNone && s <= StyleItalic
}

// Admonish is the flavor of an Admonition.
type Admonish uint32

const (
	AdmonishNone Admonish = iota + 1
	AdmonishNote
	AdmonishTip
	AdmonishImportant
	AdmonishCaution
	AdmonishWarning
)

func (a Admonish) String() string {
	switch a {
	case AdmonishNone:
		return "none"
	case AdmonishNote:
		return "note"
	case AdmonishTip:
		return "tip"
	case AdmonishImportant:
		return "important"
	case AdmonishCaution:
		return "caution"
	case AdmonishWarning:
		return "warning"
	}
	return "unknown"
}

// Valid reports whether a is a known admonition.
func (a Admonish) Valid() bool {
	return a >= AdmonishNone && a <= AdmonishWarning
}

// Node is any documentation node.
type Node interface {
	Kind() NodeKind
}

// Inline is a leaf text node.
type Inline interface {
	Node
	Text() string
	inline()
}

// Block is a top-level paragraph-family node.
type Block interface {
	Node
	Inlines() []Inline
	block()
}

// Text is plain text.
type Text struct {
	String string
}

// StyledText is text with emphasis.
type StyledText struct {
	String string
	Style  Style
}

// Paragraph is an ordinary paragraph.
type Paragraph struct {
	Children []Inline
}

// Brief is the summary paragraph.
type Brief struct {
	Children []Inline
}

// Admonition is a highlighted paragraph.
type Admonition struct {
	Children []Inline
	Style    Admonish
}

// Code is a preformatted paragraph.
type Code struct {
	Children []Inline
}

// Param documents a function parameter.
type Param struct {
	Name     string
	Children []Inline
}

// TParam documents a template parameter.
type TParam struct {
	Name     string
	Children []Inline
}

// Returns documents a return value.
type Returns struct {
	Children []Inline
}

func (*Text) Kind() NodeKind       { return KindText }
func (*StyledText) Kind() NodeKind { return KindStyled }
func (*Paragraph) Kind() NodeKind  { return KindParagraph }
func (*Brief) Kind() NodeKind      { return KindBrief }
func (*Admonition) Kind() NodeKind { return KindAdmonition }
func (*Code) Kind() NodeKind       { return KindCode }
func (*Param) Kind() NodeKind      { return KindParam }
func (*TParam) Kind() NodeKind     { return KindTParam }
func (*Returns) Kind() NodeKind    { return KindReturns }

func (t *Text) Text() string       { return t.String }
func (t *StyledText) Text() string { return t.String }

func (*Text) inline()       {}
func (*StyledText) inline() {}

func (p *Paragraph) Inlines() []Inline  { return p.Children }
func (b *Brief) Inlines() []Inline      { return b.Children }
func (a *Admonition) Inlines() []Inline { return a.Children }
func (c *Code) Inlines() []Inline       { return c.Children }

func (*Paragraph) block()  {}
func (*Brief) block()      {}
func (*Admonition) block() {}
func (*Code) block()       {}

// Empty reports whether r is absent or has no content.
func (r *Returns) Empty() bool {
	return r == nil || len(r.Children) == 0
}

// Javadoc is the documentation attached to one entity.
type Javadoc struct {
	Returns *Returns
	brief   Block
	Blocks  []Block
	Params  []*Param
	TParams []*TParam
}

// Empty reports whether the comment carries nothing.
func (d *Javadoc) Empty() bool {
	return d == nil || (len(d.Blocks) == 0 && len(d.Params) == 0 &&
		len(d.TParams) == 0 && d.Returns.Empty())
}

// Merge appends other's blocks, params and tparams after d's own and adopts
// other's Returns when d has no content there. An empty Returns left after
// the merge is dropped.
func (d *Javadoc) Merge(other *Javadoc) {
	if other == nil {
		return
	}
	d.Blocks = append(d.Blocks, other.Blocks...)
	d.Params = append(d.Params, other.Params...)
	d.TParams = append(d.TParams, other.TParams...)
	if d.Returns.Empty() && !other.Returns.Empty() {
		d.Returns = other.Returns
	}
	if d.Returns.Empty() {
		d.Returns = nil
	}
}

// CalculateBrief selects the summary block: the first Brief, else the first
// block of any kind, else none. Calling it again recomputes the same result.
// It must run after every partial comment has been merged in.
func (d *Javadoc) CalculateBrief() {
	d.brief = nil
	for _, b := range d.Blocks {
		if b.Kind() == KindBrief {
			d.brief = b
			return
		}
	}
	if len(d.Blocks) > 0 {
		d.brief = d.Blocks[0]
	}
}

// Brief returns the block chosen by CalculateBrief, or nil.
func (d *Javadoc) Brief() Block {
	if d == nil {
		return nil
	}
	return d.brief
}

// BriefText returns the plain text of the brief block.
func (d *Javadoc) BriefText() string {
	b := d.Brief()
	if b == nil {
		return ""
	}
	return PlainText(b.Inlines())
}

// PlainText concatenates the text of inline nodes.
func PlainText(nodes []Inline) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Text())
	}
	return sb.String()
}
