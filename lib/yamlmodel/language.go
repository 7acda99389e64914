// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package yamlmodel

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jenkinsci/literate-api/lib/repository"
)

// Language injects default build commands for projects declaring a
// "language" key.
type Language interface {
	// Names returns the "language" values the decorator supports.
	Names() []string

	// Decorate returns a copy of document with default build commands
	// under buildKeys[0]. Keys already present in document win.
	Decorate(ctx context.Context, document *Value, repo repository.Repository, buildKeys []string) (*Value, error)
}

// defaultLanguages is built on first use.
var defaultLanguages = sync.OnceValue(func() []Language {
	return []Language{
		probeLanguage{
			names: []string{"java"},
			probes: []probe{
				{marker: "build.gradle", command: "gradle check"},
				{marker: "pom.xml", command: "mvn test"},
			},
			fallback: "ant test",
		},
		probeLanguage{names: []string{"go"}, fallback: "go test ./..."},
		probeLanguage{names: []string{"node_js"}, fallback: "npm test"},
		probeLanguage{
			names:    []string{"ruby"},
			probes:   []probe{{marker: "Gemfile", command: "bundle exec rake"}},
			fallback: "rake",
		},
	}
})

// DefaultLanguages returns the built-in language decorators.
func DefaultLanguages() []Language {
	return slices.Clone(defaultLanguages())
}

type probe struct {
	marker  string
	command string
}

// probeLanguage picks the command of the first probe whose marker file
// exists, else the fallback command.
type probeLanguage struct {
	names    []string
	probes   []probe
	fallback string
}

func (l probeLanguage) Names() []string { return slices.Clone(l.names) }

func (l probeLanguage) Decorate(ctx context.Context, document *Value, repo repository.Repository, buildKeys []string) (*Value, error) {
	if len(buildKeys) == 0 {
		return document, nil
	}
	for _, key := range buildKeys {
		if _, present := document.Get(key); present {
			return document, nil
		}
	}

	command := l.fallback
	for _, candidate := range l.probes {
		exists, err := repo.IsFile(ctx, candidate.marker)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", candidate.marker, err)
		}
		if exists {
			command = candidate.command
			break
		}
	}

	decorated := document.Clone()
	decorated.Set(buildKeys[0], NewScalar(command))
	return decorated, nil
}

// findLanguage returns the decorator supporting name.
func findLanguage(languages []Language, name string) (Language, bool) {
	for _, language := range languages {
		if slices.Contains(language.Names(), name) {
			return language, true
		}
	}
	return nil, false
}
