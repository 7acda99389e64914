// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package markdown builds project models from literate Markdown
// documents.
//
// A project opts in by committing a marker file named ".{base}.md"
// (".cloudbees.md" by default). The document is parsed with goldmark
// (GitHub Flavored Markdown plus definition lists) and converted into a
// small tagged tree of [Node] values; the section consumers work on
// that tree with plain recursive predicates.
//
// Three kinds of section are recognized, each introduced by a heading
// whose text contains the section identifier (case-insensitive) and
// running until the next heading of any level:
//
//   - Environments: each bullet item is an environment whose labels are
//     the inline code spans of the item. Nested bullet lists produce one
//     environment per leaf, each carrying the labels of its ancestors.
//   - Build: an indented or fenced code block is a command for every
//     environment. A bullet item containing a code block is a command
//     for the environment labelled by the code spans written before the
//     block ("On `linux`, `x86`"). A definition list declares
//     parameters: the term is the name, the definition text the
//     description, its first code span the default value and any
//     further code spans the accepted values.
//   - Tasks: one section per requested task id. Code blocks are the
//     task commands, definition lists its parameters; bullet lists are
//     ignored.
//
// A marker file that yields neither build commands nor tasks falls
// back to the project's README.md when one exists. If that also yields
// nothing the build fails with a [source.ValidationError] describing
// the accepted build section shapes.
package markdown
