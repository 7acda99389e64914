// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/repository"
	"github.com/jenkinsci/literate-api/lib/source"
	"github.com/jenkinsci/literate-api/lib/testutil"
)

const smokesDocument = `# Literate project

Some introduction that the parser ignores.

# Environments

* ` + "`java`" + `
    * ` + "`oraclejdk7`" + `
        * ` + "`linux`, `x86`" + `
        * ` + "`windows`" + `
    * ` + "`openjdk7`" + `
* ` + "`ruby`" + `
* ` + "`node`" + `

# Build

* On ` + "`java`" + `:

        mvn verify

* On ` + "`ruby`" + `:

        rake build

# Deploy

    bees app:deploy
`

func build(t *testing.T, files map[string]string, options ...source.RequestOption) (*model.ProjectModel, error) {
	t.Helper()
	request := source.NewRequest(repository.NewMemory(files), options...)
	return New(testutil.DiscardLogger()).Build(context.Background(), request)
}

func mustBuild(t *testing.T, files map[string]string, options ...source.RequestOption) *model.ProjectModel {
	t.Helper()
	project, err := build(t, files, options...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return project
}

func TestBuildSmokes(t *testing.T) {
	t.Parallel()

	project := mustBuild(t, map[string]string{".cloudbees.md": smokesDocument})

	testutil.RequireStrings(t, project.BuildForLabels("java"), []string{"mvn verify"}, "java build")
	testutil.RequireStrings(t, project.BuildForLabels("ruby"), []string{"rake build"}, "ruby build")
	testutil.RequireStrings(t, project.BuildForLabels("node"), nil, "node build")

	environments := project.Environments()
	if len(environments) != 5 {
		t.Fatalf("len(Environments()) = %d, want 5: %v", len(environments), environments)
	}
	want := []model.ExecutionEnvironment{
		model.NewEnvironment("java", "oraclejdk7", "linux", "x86"),
		model.NewEnvironment("java", "oraclejdk7", "windows"),
		model.NewEnvironment("java", "openjdk7"),
		model.NewEnvironment("ruby"),
		model.NewEnvironment("node"),
	}
	for index := range want {
		if !environments[index].Equal(want[index]) {
			t.Errorf("Environments()[%d] = %s, want %s", index, environments[index], want[index])
		}
	}

	deploy, ok := project.Task("deploy")
	if !ok {
		t.Fatal("deploy task missing")
	}
	testutil.RequireStrings(t, deploy.Command(), []string{"bees app:deploy"}, "deploy task")
}

func TestBuildGlobalVerbatim(t *testing.T) {
	t.Parallel()

	project := mustBuild(t, map[string]string{".cloudbees.md": "# Build\n\n    mvn test\n"})
	testutil.RequireStrings(t, project.BuildFor(model.Any()), []string{"mvn test"}, "any build")
	testutil.RequireStrings(t, project.BuildForLabels("linux"), []string{"mvn test"}, "linux build")
}

func TestBuildLabelledBullet(t *testing.T) {
	t.Parallel()

	project := mustBuild(t, map[string]string{
		".cloudbees.md": "# Build\n\n* On `linux`, `x86`\n\n        make\n",
	})
	testutil.RequireStrings(t, project.BuildForLabels("linux", "x86"), []string{"make"}, "linux x86 build")
	if got := project.BuildForLabels("windows"); got != nil {
		t.Errorf("BuildForLabels(windows) = %q, want nil", got)
	}
}

func TestBuildMultipleListsInOneSection(t *testing.T) {
	t.Parallel()

	document := "# Build\n\n" +
		"* On `ruby`:\n\n        rake build\n\n" +
		"A note in the middle. Smell the roses.\n\n" +
		"* On `ruby`:\n\n        rake clean\n"
	project := mustBuild(t, map[string]string{".cloudbees.md": document})
	testutil.RequireStrings(t, project.BuildForLabels("ruby"), []string{"rake build", "rake clean"}, "ruby build")
}

func TestBuildFencedCommands(t *testing.T) {
	t.Parallel()

	document := "# Build\n\n* On `java`:\n\n  ```\n  mvn verify\n  ```\n"
	project := mustBuild(t, map[string]string{".cloudbees.md": document})
	testutil.RequireStrings(t, project.BuildForLabels("java"), []string{"mvn verify"}, "java build")
}

func TestBuildRejectsMixedSection(t *testing.T) {
	t.Parallel()

	document := "# Build\n\n    make\n\n* On `linux`\n\n        make linux\n"
	_, err := build(t, map[string]string{".cloudbees.md": document})
	if !errors.Is(err, model.ErrMisuse) {
		t.Fatalf("Build error = %v, want ErrMisuse", err)
	}
	if !strings.Contains(err.Error(), "global command and environment specific commands") {
		t.Errorf("error = %q, want mention of mixed commands", err)
	}
}

func TestBuildMixedSectionSkipsFallback(t *testing.T) {
	t.Parallel()

	_, err := build(t, map[string]string{
		".cloudbees.md": "# Build\n\n    make\n\n* On `linux`\n\n        make linux\n",
		"README.md":     "# Build\n\n    ./gradlew check\n",
	})
	if !errors.Is(err, model.ErrMisuse) {
		t.Fatalf("Build error = %v, want ErrMisuse from the marker file", err)
	}
	if !strings.Contains(err.Error(), ".cloudbees.md") {
		t.Errorf("error = %q, want the marker file named", err)
	}
	if source.IsRecoverable(err) {
		t.Error("mixed build commands should not be recoverable")
	}
}

func TestBuildFallsBackToReadme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		marker string
	}{
		{"dummy text", "# Hello\n\nThis project is built by the CI system. See the README.\n"},
		{"empty marker", ""},
		{"too short", "# B\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			project := mustBuild(t, map[string]string{
				".cloudbees.md": test.marker,
				"README.md":     "# My project\n\n## Build\n\n    mvn install\n",
			})
			environments := project.Environments()
			if len(environments) != 1 || !environments[0].IsUnspecified() {
				t.Errorf("Environments() = %v, want [{any}]", environments)
			}
			testutil.RequireStrings(t, project.BuildFor(model.Any()), []string{"mvn install"}, "fallback build")
		})
	}
}

func TestBuildValidationFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		file  string
	}{
		{
			name:  "no fallback",
			files: map[string]string{".cloudbees.md": "# Hello\n\nNothing to build here, move along.\n"},
			file:  ".cloudbees.md",
		},
		{
			name: "fallback without build",
			files: map[string]string{
				".cloudbees.md": "# Hello\n\nNothing to build here, move along.\n",
				"README.md":     "# Hello\n\nStill nothing to build here.\n",
			},
			file: "README.md",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := build(t, test.files)
			var validation *source.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("Build error = %v, want *source.ValidationError", err)
			}
			if !strings.Contains(err.Error(), test.file) {
				t.Errorf("error = %q, want it to name %s", err, test.file)
			}
			for _, shape := range []string{"verbatim", "bullet list", "definition list"} {
				if !strings.Contains(err.Error(), shape) {
					t.Errorf("error = %q, want it to mention %q", err, shape)
				}
			}
		})
	}
}

func TestBuildNotMarkdownProject(t *testing.T) {
	t.Parallel()

	_, err := build(t, map[string]string{"README.md": "# Build\n\n    make\n"})
	var building *source.BuildingError
	if !errors.As(err, &building) {
		t.Fatalf("Build error = %v, want *source.BuildingError", err)
	}
}

func TestBuildCustomRequest(t *testing.T) {
	t.Parallel()

	document := `# Target platforms

* ` + "`linux`" + `
    * ` + "`x86`" + `
    * ` + "`x64`" + `
    * ` + "`arm`" + `
* ` + "`osx`" + `
    * ` + "`x86`" + `
    * ` + "`x64`" + `

# How to build

    ./configure
    ./make clean all

# Install

    ./make install

# Uninstall

    ./make uninstall
`
	project := mustBuild(t, map[string]string{".foobar.md": document},
		source.WithBaseName("foobar"),
		source.WithEnvironmentsID("target"),
		source.WithBuildID("how to"),
		source.WithTaskIDs("install", "uninstall"),
	)

	testutil.RequireStrings(t, project.BuildForLabels(), []string{"./configure\n./make clean all"}, "build")
	environments := project.Environments()
	want := []model.ExecutionEnvironment{
		model.NewEnvironment("linux", "x86"),
		model.NewEnvironment("linux", "x64"),
		model.NewEnvironment("linux", "arm"),
		model.NewEnvironment("osx", "x86"),
		model.NewEnvironment("osx", "x64"),
	}
	if len(environments) != len(want) {
		t.Fatalf("Environments() = %v, want %v", environments, want)
	}
	for index := range want {
		if !environments[index].Equal(want[index]) {
			t.Errorf("Environments()[%d] = %s, want %s", index, environments[index], want[index])
		}
	}
	for id, command := range map[string]string{"install": "./make install", "uninstall": "./make uninstall"} {
		task, ok := project.Task(id)
		if !ok {
			t.Fatalf("task %s missing", id)
		}
		testutil.RequireStrings(t, task.Command(), []string{command}, "%s task", id)
	}
}

func TestBuildParameters(t *testing.T) {
	t.Parallel()

	document := `# Build

    ant

JAVA_HOME
:   The home directory of Java, defaults to ` + "`/usr/bin/java`" + `

ANT_HOME
:   The home directory of ANT

TARGET
:   Where to deploy: ` + "`staging`, `production` or `staging`" + `

# Task

    mvn deploy

JAVA_HOME
:   The home directory of Java

MAVEN_HOME
:   The home directory of Maven
`
	project := mustBuild(t, map[string]string{".cloudbees.md": document}, source.WithTaskIDs("task"))

	javaHome, ok := project.Build().Parameter("JAVA_HOME")
	if !ok {
		t.Fatal("build parameter JAVA_HOME missing")
	}
	want := model.NewParameter("JAVA_HOME",
		model.WithDescription("The home directory of Java, defaults to /usr/bin/java"),
		model.WithDefault("/usr/bin/java"))
	if !javaHome.Equal(want) {
		t.Errorf("JAVA_HOME = %+v, want %+v", javaHome, want)
	}

	antHome, ok := project.Build().Parameter("ANT_HOME")
	if !ok {
		t.Fatal("build parameter ANT_HOME missing")
	}
	if !antHome.Equal(model.NewParameter("ANT_HOME", model.WithDescription("The home directory of ANT"))) {
		t.Errorf("ANT_HOME = %+v", antHome)
	}

	target, ok := project.Build().Parameter("TARGET")
	if !ok {
		t.Fatal("build parameter TARGET missing")
	}
	if value, _ := target.Default(); value != "staging" {
		t.Errorf("TARGET default = %q, want staging", value)
	}
	testutil.RequireStrings(t, target.ValidValues(), []string{"staging", "production"}, "TARGET valid values")

	task, ok := project.Task("task")
	if !ok {
		t.Fatal("task missing")
	}
	testutil.RequireStrings(t, task.Command(), []string{"mvn deploy"}, "task command")
	for name, description := range map[string]string{
		"JAVA_HOME":  "The home directory of Java",
		"MAVEN_HOME": "The home directory of Maven",
	} {
		parameter, ok := task.Parameter(name)
		if !ok {
			t.Fatalf("task parameter %s missing", name)
		}
		if !parameter.Equal(model.NewParameter(name, model.WithDescription(description))) {
			t.Errorf("task parameter %s = %+v", name, parameter)
		}
	}
}

func TestBuildThroughSource(t *testing.T) {
	t.Parallel()

	registry := source.New(testutil.DiscardLogger(), New(nil))
	request := source.NewRequest(repository.NewMemory(map[string]string{
		".cloudbees.md": "# Build\n\n    make\n\n* On `linux`\n\n        make linux\n",
	}))
	_, err := registry.Submit(context.Background(), request)
	if !errors.Is(err, model.ErrMisuse) {
		t.Fatalf("Submit error = %v, want ErrMisuse", err)
	}
}

func TestMarkerFiles(t *testing.T) {
	t.Parallel()

	builder := New(nil, WithFallbackFile("INDEX.md"))
	testutil.RequireStrings(t, builder.MarkerFiles("foobar"), []string{".foobar.md"}, "marker files")
	if builder.fallbackFile != "INDEX.md" {
		t.Errorf("fallbackFile = %q, want INDEX.md", builder.fallbackFile)
	}
	if builder.Priority() != Priority {
		t.Errorf("Priority() = %d, want %d", builder.Priority(), Priority)
	}
}
