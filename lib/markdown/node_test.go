// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"testing"
)

func TestParseProducesTaggedTree(t *testing.T) {
	t.Parallel()

	document := Parse([]byte("# Build `now`\n\nSome *text* and `code`.\n\n    make all\n\n```sh\nmake test\n```\n"))
	if document.Kind != KindDocument {
		t.Fatalf("root kind = %s, want document", document.Kind)
	}

	var kinds []Kind
	for _, child := range document.Children {
		kinds = append(kinds, child.Kind)
	}
	want := []Kind{KindHeading, KindParagraph, KindVerbatim, KindVerbatim}
	if len(kinds) != len(want) {
		t.Fatalf("top-level kinds = %v, want %v", kinds, want)
	}
	for index := range want {
		if kinds[index] != want[index] {
			t.Errorf("child %d kind = %s, want %s", index, kinds[index], want[index])
		}
	}

	heading := document.Children[0]
	if heading.Level != 1 {
		t.Errorf("heading level = %d, want 1", heading.Level)
	}
	if got := heading.Text(); got != "Build now" {
		t.Errorf("heading text = %q, want %q", got, "Build now")
	}
	if got := document.Children[1].Text(); got != "Some text and code." {
		t.Errorf("paragraph text = %q, want %q", got, "Some text and code.")
	}
	if got := codeSpans(document.Children[1]); len(got) != 1 || got[0] != "code" {
		t.Errorf("codeSpans = %q, want [code]", got)
	}
	if got := document.Children[2].Value; got != "make all" {
		t.Errorf("indented block = %q, want %q", got, "make all")
	}
	if got := document.Children[3].Value; got != "make test" {
		t.Errorf("fenced block = %q, want %q", got, "make test")
	}
}

func TestParseDedentsNestedBlocks(t *testing.T) {
	t.Parallel()

	document := Parse([]byte("* On `linux`\n\n        make\n        make install\n"))
	if len(document.Children) != 1 || !isBulletList(document.Children[0]) {
		t.Fatalf("expected a single bullet list, got %d children", len(document.Children))
	}
	item := document.Children[0].Children[0]
	if !hasDescendant(item, isVerbatim) {
		t.Fatal("list item should contain a verbatim block")
	}
	entry, ok := parseBuildItem(item)
	if !ok {
		t.Fatal("parseBuildItem rejected an item with a code block")
	}
	if len(entry.Commands) != 1 || entry.Commands[0] != "make\nmake install" {
		t.Errorf("commands = %q, want [\"make\\nmake install\"]", entry.Commands)
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	document := Parse(nil)
	if document.Kind != KindDocument || len(document.Children) != 0 {
		t.Errorf("Parse(nil) = %s with %d children, want empty document", document.Kind, len(document.Children))
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got := KindDefinitionList.String(); got != "definition-list" {
		t.Errorf("KindDefinitionList.String() = %q", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q, want unknown", got)
	}
}
