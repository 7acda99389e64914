// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"strings"
	"sync"

	"github.com/lithammer/dedent"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Kind identifies the variant of a [Node].
type Kind int

const (
	KindGeneric Kind = iota
	KindDocument
	KindHeading
	KindParagraph
	KindList
	KindListItem
	// KindCode is an inline code span.
	KindCode
	// KindVerbatim is an indented or fenced code block.
	KindVerbatim
	KindText
	KindDefinitionList
	KindDefinitionTerm
	KindDefinition
)

var kindNames = [...]string{
	KindGeneric:        "generic",
	KindDocument:       "document",
	KindHeading:        "heading",
	KindParagraph:      "paragraph",
	KindList:           "list",
	KindListItem:       "list-item",
	KindCode:           "code",
	KindVerbatim:       "verbatim",
	KindText:           "text",
	KindDefinitionList: "definition-list",
	KindDefinitionTerm: "definition-term",
	KindDefinition:     "definition",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is one element of a parsed document. Literal content lives in
// Value: the text of a Text node, the content of a Code span, or the
// command text of a Verbatim block. Container nodes carry Children.
type Node struct {
	Kind     Kind
	Value    string
	Level    int  // heading level
	Ordered  bool // numbered list
	Children []*Node
}

// Text returns the concatenated literal text of the node and its
// descendants. Code spans contribute their content; verbatim blocks
// contribute nothing.
func (n *Node) Text() string {
	var builder strings.Builder
	n.appendText(&builder)
	return builder.String()
}

func (n *Node) appendText(builder *strings.Builder) {
	switch n.Kind {
	case KindText, KindCode:
		builder.WriteString(n.Value)
		return
	case KindVerbatim:
		return
	}
	for index, child := range n.Children {
		if index > 0 && isBlock(child) {
			builder.WriteByte('\n')
		}
		child.appendText(builder)
	}
}

func isBlock(n *Node) bool {
	switch n.Kind {
	case KindParagraph, KindList, KindListItem, KindVerbatim, KindHeading,
		KindDefinitionList, KindDefinitionTerm, KindDefinition:
		return true
	}
	return false
}

// Parse converts Markdown source into a document tree. It never fails:
// any input produces some tree, possibly with no children.
func Parse(source []byte) *Node {
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))
	return convert(document, source)
}

// markdownParser is built once; goldmark parsers are safe to share and
// keep per-call state in Parse.
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		)
	})
	return markdownParserInstance
}

func convert(node ast.Node, source []byte) *Node {
	result := &Node{Kind: KindGeneric}
	switch node.Kind() {
	case ast.KindDocument:
		result.Kind = KindDocument
	case ast.KindHeading:
		result.Kind = KindHeading
		result.Level = node.(*ast.Heading).Level
	case ast.KindParagraph, ast.KindTextBlock:
		result.Kind = KindParagraph
	case ast.KindList:
		result.Kind = KindList
		result.Ordered = node.(*ast.List).IsOrdered()
	case ast.KindListItem:
		result.Kind = KindListItem
	case ast.KindCodeBlock, ast.KindFencedCodeBlock:
		result.Kind = KindVerbatim
		result.Value = blockText(node, source)
		return result
	case ast.KindCodeSpan:
		result.Kind = KindCode
		result.Value = inlineText(node, source)
		return result
	case ast.KindText:
		textNode := node.(*ast.Text)
		result.Kind = KindText
		result.Value = string(textNode.Segment.Value(source))
		if textNode.HardLineBreak() {
			result.Value += "\n"
		} else if textNode.SoftLineBreak() {
			result.Value += " "
		}
		return result
	case ast.KindString:
		result.Kind = KindText
		result.Value = string(node.(*ast.String).Value)
		return result
	case ast.KindAutoLink:
		result.Kind = KindText
		result.Value = string(node.(*ast.AutoLink).Label(source))
		return result
	case ast.KindHTMLBlock, ast.KindRawHTML, ast.KindThematicBreak:
		return result
	case extast.KindDefinitionList:
		result.Kind = KindDefinitionList
	case extast.KindDefinitionTerm:
		result.Kind = KindDefinitionTerm
	case extast.KindDefinitionDescription:
		result.Kind = KindDefinition
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		result.Children = append(result.Children, convert(child, source))
	}
	return result
}

// blockText returns the content of a code block with the common
// indentation removed and without the final line break.
func blockText(node ast.Node, source []byte) string {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(source))
	}
	return strings.TrimRight(dedent.Dedent(code.String()), "\n")
}

// inlineText collects the text of a code span's children.
func inlineText(node ast.Node, source []byte) string {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			code.Write(textNode.Segment.Value(source))
		} else if stringNode, ok := child.(*ast.String); ok {
			code.Write(stringNode.Value)
		}
	}
	return code.String()
}
