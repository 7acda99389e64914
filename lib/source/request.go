// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"slices"
	"strings"

	"github.com/jenkinsci/literate-api/lib/repository"
)

// Default request naming conventions.
const (
	DefaultBaseName       = "cloudbees"
	DefaultEnvironmentsID = "environments"
	DefaultBuildID        = "build"
	DefaultTaskID         = "deploy"
)

// Request names the project to resolve and the conventions used to
// find sections in its documents. Requests are immutable; construct
// them with [NewRequest].
type Request struct {
	repository     repository.Repository
	baseName       string
	environmentsID string
	buildID        string
	taskIDs        []string
}

// RequestOption overrides a default of [NewRequest].
type RequestOption func(*Request)

// WithBaseName sets the base name of marker files (".{base}.md").
// An empty name keeps the default.
func WithBaseName(name string) RequestOption {
	return func(request *Request) {
		if name != "" {
			request.baseName = name
		}
	}
}

// WithEnvironmentsID sets the identifier of the environments section.
func WithEnvironmentsID(id string) RequestOption {
	return func(request *Request) {
		if id != "" {
			request.environmentsID = id
		}
	}
}

// WithBuildID sets the identifier of the build section. The YAML
// builder accepts a comma or space separated list of keys here.
func WithBuildID(id string) RequestOption {
	return func(request *Request) {
		if id != "" {
			request.buildID = id
		}
	}
}

// WithTaskIDs adds task identifiers. Identifiers are lower-cased;
// blank ones are ignored.
func WithTaskIDs(ids ...string) RequestOption {
	return func(request *Request) {
		for _, id := range ids {
			id = strings.ToLower(strings.TrimSpace(id))
			if id != "" {
				request.taskIDs = append(request.taskIDs, id)
			}
		}
	}
}

// NewRequest returns a request for the project served by repo. A nil
// repository is a programming error and panics.
func NewRequest(repo repository.Repository, options ...RequestOption) Request {
	if repo == nil {
		panic("source.NewRequest: repository is required")
	}
	request := Request{
		repository:     repo,
		baseName:       DefaultBaseName,
		environmentsID: DefaultEnvironmentsID,
		buildID:        DefaultBuildID,
	}
	for _, option := range options {
		option(&request)
	}
	if len(request.taskIDs) == 0 {
		request.taskIDs = []string{DefaultTaskID}
	}
	slices.Sort(request.taskIDs)
	request.taskIDs = slices.Compact(request.taskIDs)
	return request
}

// Repository returns the project's files.
func (r Request) Repository() repository.Repository { return r.repository }

// BaseName returns the marker file base name.
func (r Request) BaseName() string { return r.baseName }

// EnvironmentsID returns the environments section identifier.
func (r Request) EnvironmentsID() string { return r.environmentsID }

// BuildID returns the build section identifier.
func (r Request) BuildID() string { return r.buildID }

// TaskIDs returns the sorted, lower-cased task identifiers. Never
// empty.
func (r Request) TaskIDs() []string { return slices.Clone(r.taskIDs) }
