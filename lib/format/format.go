// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package format renders project models back into documents that the
// literate builders read.
package format

import (
	"mime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jenkinsci/literate-api/lib/model"
)

// MIMEMarkdown is the media type produced by [Markdown].
const MIMEMarkdown = "text/markdown"

// Formatter renders a project model as a document of one media type.
type Formatter interface {
	MIMEType() string
	Format(project *model.ProjectModel) string
}

var formatters = []Formatter{Markdown{}}

// ForMIME returns the formatter for a media type, ignoring media type
// parameters such as charset. It returns nil for unknown types.
func ForMIME(mimeType string) Formatter {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return nil
	}
	for _, formatter := range formatters {
		if formatter.MIMEType() == mediaType {
			return formatter
		}
	}
	return nil
}

// Markdown renders a model in the Markdown dialect read by the
// markdown builder. Environment variables and parameters have no
// Markdown form and are not rendered.
type Markdown struct{}

func (Markdown) MIMEType() string { return MIMEMarkdown }

func (Markdown) Format(project *model.ProjectModel) string {
	var out strings.Builder
	out.WriteString("# Project Name\n\n# Environments\n")
	for _, environment := range project.Environments() {
		if environment.LabelCount() == 0 {
			continue
		}
		out.WriteString("\n* ")
		writeLabels(&out, environment.Labels())
		out.WriteString("\n")
	}

	out.WriteString("\n# Build\n\n")
	for _, entry := range project.Build().Entries() {
		indent := "    "
		if entry.Environment.LabelCount() > 0 {
			out.WriteString("* On ")
			writeLabels(&out, entry.Environment.Labels())
			out.WriteString("\n\n")
			indent = "        "
		}
		writeCommands(&out, entry.Commands, indent, indent[4:]+"Then\n\n")
	}

	for _, id := range project.TaskIDs() {
		task, ok := project.Task(id)
		if !ok || id == "" {
			continue
		}
		out.WriteString("\n# ")
		out.WriteString(title(id))
		out.WriteString("\n\n")
		writeCommands(&out, task.Command(), "    ", "Then\n\n")
	}
	return out.String()
}

func writeLabels(out *strings.Builder, labels []string) {
	for index, label := range labels {
		if index > 0 {
			out.WriteString(", ")
		}
		out.WriteString("`" + label + "`")
	}
}

// writeCommands writes each command as an indented code block, with a
// separator paragraph between consecutive blocks.
func writeCommands(out *strings.Builder, commands []string, indent, separator string) {
	for index, command := range commands {
		if index > 0 {
			out.WriteString(separator)
		}
		out.WriteString(indent)
		out.WriteString(strings.ReplaceAll(command, "\n", "\n"+indent))
		out.WriteString("\n\n")
	}
}

func title(id string) string {
	first, size := utf8.DecodeRuneInString(id)
	return string(unicode.ToUpper(first)) + id[size:]
}
