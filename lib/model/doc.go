// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package model defines the immutable build model resolved from a
// project description.
//
// A [ProjectModel] lists the [ExecutionEnvironment] values a project
// targets, one build command table ([Commands]) and any number of named
// tasks ([TaskCommands]). Consumers query it by environment:
//
//	commands := project.BuildFor(model.NewEnvironment("linux", "x86"))
//
// Environments are value types. An environment is a set of labels plus
// a map of variables; [ExecutionEnvironment.IsMatchFor] is containment
// in both. The zero value is the "any" environment returned by [Any],
// which every environment satisfies.
//
// Command lookup ([Commands.MatchingCommand]) picks, among the entries
// whose environment is satisfied by the query, the one with the fewest
// labels. Ties go to the entry inserted first. This deliberately
// prefers the least specific match.
//
// Models are produced through a [Builder], which is single-use and not
// safe for concurrent use. Everything else in this package is immutable
// once constructed and may be shared freely between goroutines.
//
// This package depends on no other literate packages.
package model
