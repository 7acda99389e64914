// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import "strings"

func isHeading(node *Node) bool { return node.Kind == KindHeading }

func isHeadingContaining(node *Node, token string) bool {
	return isHeading(node) && strings.Contains(strings.ToLower(node.Text()), strings.ToLower(token))
}

func isListItem(node *Node) bool { return node.Kind == KindListItem }

func isVerbatim(node *Node) bool { return node.Kind == KindVerbatim }

// isBulletList matches bulleted and numbered lists that hold at least
// one item.
func isBulletList(node *Node) bool {
	return node.Kind == KindList && hasChild(node, isListItem)
}

func isDefinitionList(node *Node) bool {
	return node.Kind == KindDefinitionList &&
		hasChild(node, func(child *Node) bool { return child.Kind == KindDefinitionTerm }) &&
		hasChild(node, func(child *Node) bool { return child.Kind == KindDefinition })
}

func hasChild(node *Node, match func(*Node) bool) bool {
	for _, child := range node.Children {
		if match(child) {
			return true
		}
	}
	return false
}

func hasDescendant(node *Node, match func(*Node) bool) bool {
	for _, child := range node.Children {
		if match(child) || hasDescendant(child, match) {
			return true
		}
	}
	return false
}

// codeSpans returns the content of every code span below node, in
// document order.
func codeSpans(node *Node) []string {
	var spans []string
	for _, child := range node.Children {
		if child.Kind == KindCode {
			spans = append(spans, child.Value)
			continue
		}
		spans = append(spans, codeSpans(child)...)
	}
	return spans
}
