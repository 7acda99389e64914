// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"strings"
	"testing"

	"github.com/jenkinsci/literate-api/lib/markdown"
	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/testutil"
)

func labelledModel(t *testing.T) *model.ProjectModel {
	t.Helper()
	builder := model.NewBuilder().
		AddEnvironmentLabels("linux", "x86").
		AddEnvironmentLabels("windows")
	if err := builder.AddBuild(model.NewEnvironment("linux", "x86"), "./configure\nmake", "make test"); err != nil {
		t.Fatalf("AddBuild(linux): %v", err)
	}
	if err := builder.AddBuild(model.NewEnvironment("windows"), "nmake"); err != nil {
		t.Fatalf("AddBuild(windows): %v", err)
	}
	builder.AddTask("deploy", "./deploy.sh", "./notify.sh")
	return builder.Build()
}

func TestMarkdownFormat(t *testing.T) {
	t.Parallel()

	got := Markdown{}.Format(labelledModel(t))
	want := "# Project Name\n" +
		"\n" +
		"# Environments\n" +
		"\n" +
		"* `linux`, `x86`\n" +
		"\n" +
		"* `windows`\n" +
		"\n" +
		"# Build\n" +
		"\n" +
		"* On `linux`, `x86`\n" +
		"\n" +
		"        ./configure\n" +
		"        make\n" +
		"\n" +
		"    Then\n" +
		"\n" +
		"        make test\n" +
		"\n" +
		"* On `windows`\n" +
		"\n" +
		"        nmake\n" +
		"\n" +
		"\n" +
		"# Deploy\n" +
		"\n" +
		"    ./deploy.sh\n" +
		"\n" +
		"Then\n" +
		"\n" +
		"    ./notify.sh\n" +
		"\n"
	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarkdownFormatGlobalBuild(t *testing.T) {
	t.Parallel()

	builder := model.NewBuilder()
	if err := builder.AddBuild(model.Any(), "make", "make install"); err != nil {
		t.Fatalf("AddBuild: %v", err)
	}
	got := Markdown{}.Format(builder.Build())
	if !strings.Contains(got, "# Build\n\n    make\n\nThen\n\n    make install\n\n") {
		t.Errorf("Format() =\n%s\nwant 4-space commands separated by Then", got)
	}
	if strings.Contains(got, "* ") {
		t.Errorf("Format() =\n%s\nshould not list the unspecified environment", got)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		project *model.ProjectModel
	}{
		{name: "labelled", project: labelledModel(t)},
		{name: "global", project: func() *model.ProjectModel {
			builder := model.NewBuilder().AddTask("deploy", "bees app:deploy")
			if err := builder.AddBuild(model.Any(), "mvn test", "mvn install"); err != nil {
				t.Fatalf("AddBuild: %v", err)
			}
			return builder.Build()
		}()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			document := Markdown{}.Format(test.project)
			parsed, err := markdown.BuildModel([]byte(document), markdown.Sections{
				EnvironmentsID: "environments",
				BuildID:        "build",
				TaskIDs:        []string{"deploy"},
			})
			if err != nil {
				t.Fatalf("BuildModel: %v\n%s", err, document)
			}

			want := test.project.Environments()
			got := parsed.Environments()
			if len(got) != len(want) {
				t.Fatalf("Environments() = %v, want %v", got, want)
			}
			for index := range want {
				if !got[index].Equal(want[index]) {
					t.Errorf("environment %d = %s, want %s", index, got[index], want[index])
				}
			}
			for _, environment := range want {
				testutil.RequireStrings(t, parsed.BuildFor(environment), test.project.BuildFor(environment),
					"build for %s", environment)
			}
			testutil.RequireStrings(t, parsed.TaskIDs(), test.project.TaskIDs(), "task ids")
			for _, id := range test.project.TaskIDs() {
				original, _ := test.project.Task(id)
				task, ok := parsed.Task(id)
				if !ok {
					t.Fatalf("task %s lost", id)
				}
				testutil.RequireStrings(t, task.Command(), original.Command(), "task %s", id)
			}
		})
	}
}

func TestForMIME(t *testing.T) {
	t.Parallel()

	for _, mimeType := range []string{"text/markdown", "text/markdown; charset=utf-8", "TEXT/Markdown"} {
		if formatter := ForMIME(mimeType); formatter == nil || formatter.MIMEType() != MIMEMarkdown {
			t.Errorf("ForMIME(%q) = %v, want the Markdown formatter", mimeType, formatter)
		}
	}
	for _, mimeType := range []string{"text/html", "", "not a media type;"} {
		if formatter := ForMIME(mimeType); formatter != nil {
			t.Errorf("ForMIME(%q) = %v, want nil", mimeType, formatter)
		}
	}
}
