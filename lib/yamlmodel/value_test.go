// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package yamlmodel

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jenkinsci/literate-api/lib/testutil"
)

func TestLoadKeepsKeyOrder(t *testing.T) {
	t.Parallel()

	document, err := Load([]byte("zeta: 1\nalpha: [a, b]\nmiddle:\n  inner: x\nempty:\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if document.Kind != KindMapping {
		t.Fatalf("Kind = %s, want mapping", document.Kind)
	}
	testutil.RequireStrings(t, document.Keys(), []string{"zeta", "alpha", "middle", "empty"}, "keys")

	alpha, _ := document.Get("alpha")
	values, err := alpha.Strings()
	if err != nil {
		t.Fatalf("alpha Strings: %v", err)
	}
	testutil.RequireStrings(t, values, []string{"a", "b"}, "alpha")

	empty, ok := document.Get("empty")
	if !ok || !empty.IsNull() {
		t.Errorf("empty = %+v (%v), want a present null", empty, ok)
	}
	middle, _ := document.Get("middle")
	if _, err := middle.Strings(); err == nil {
		t.Error("Strings() on a mapping should fail")
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "# only a comment\n", "~\n"} {
		document, err := Load([]byte(input))
		if err != nil {
			t.Fatalf("Load(%q): %v", input, err)
		}
		if !document.IsNull() {
			t.Errorf("Load(%q) = %s, want null", input, document.Kind)
		}
	}
}

func TestLoadMergeKeys(t *testing.T) {
	t.Parallel()

	document, err := Load([]byte(`defaults: &defaults
  build: make
  deploy: ./deploy.sh
project:
  <<: *defaults
  build: make all
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	project, _ := document.Get("project")
	testutil.RequireStrings(t, project.Keys(), []string{"build", "deploy"}, "merged keys")
	build, _ := project.Get("build")
	if build.Scalar != "make all" {
		t.Errorf("build = %q, want the mapping's own value", build.Scalar)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	if _, err := Load([]byte("build: [unclosed\n")); err == nil {
		t.Error("Load should fail on an unclosed flow sequence")
	}
}

func TestCloneIsShallow(t *testing.T) {
	t.Parallel()

	original := NewMapping()
	original.Set("build", NewScalar("make"))
	clone := original.Clone()
	clone.Set("deploy", NewScalar("./deploy.sh"))
	clone.Set("build", NewScalar("make all"))

	testutil.RequireStrings(t, original.Keys(), []string{"build"}, "original keys")
	build, _ := original.Get("build")
	if build.Scalar != "make" {
		t.Errorf("original build = %q, want make", build.Scalar)
	}
	testutil.RequireStrings(t, clone.Keys(), []string{"build", "deploy"}, "clone keys")
}

func TestLoadSelfReferencingAnchor(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"a: &x [*x]\n",
		"a: &x {b: *x}\n",
	} {
		_, err := Load([]byte(input))
		if err == nil {
			t.Fatalf("Load(%q) should fail", input)
		}
		if !strings.Contains(err.Error(), "contains itself") {
			t.Errorf("Load(%q) = %v, want an anchor that contains itself", input, err)
		}
	}
}

func TestLoadRepeatedAliasIsNotACycle(t *testing.T) {
	t.Parallel()

	document, err := Load([]byte("base: &base [make]\nfirst: *base\nsecond: [*base, *base]\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, _ := document.Get("second")
	if len(second.Items) != 2 || len(second.Items[1].Items) != 1 {
		t.Errorf("second = %+v, want two copies of [make]", second)
	}
}

// nestedAliases returns a document in which each anchor lists the
// previous one ten times.
func nestedAliases(levels int) string {
	var document strings.Builder
	document.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for level := 1; level <= levels; level++ {
		alias := fmt.Sprintf("*l%d", level-1)
		fmt.Fprintf(&document, "l%d: &l%d [%s]\n", level, level, strings.TrimSuffix(strings.Repeat(alias+", ", 10), ", "))
	}
	return document.String()
}

func TestLoadAliasExpansionBudget(t *testing.T) {
	t.Parallel()

	if _, err := Load([]byte(nestedAliases(2))); err != nil {
		t.Fatalf("Load(2 levels): %v", err)
	}
	_, err := Load([]byte(nestedAliases(7)))
	if !errors.Is(err, ErrAliasExpansion) {
		t.Fatalf("Load(7 levels) = %v, want ErrAliasExpansion", err)
	}
}
