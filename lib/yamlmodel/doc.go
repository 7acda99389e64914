// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

// Package yamlmodel builds project models from YAML build descriptors
// such as ".cloudbees.yml" or ".travis.yml".
//
// The document is loaded into an order-preserving [Value] tree and read
// in four steps:
//
//  1. Language defaults. When the top-level "language" key names a
//     registered [Language], the language may add default build
//     commands, for example by probing the repository for a pom.xml.
//     Keys already present in the document always win.
//  2. Environments. The environments section is expanded by shape: a
//     scalar is one single-label environment, a flat list of scalars is
//     one environment carrying every scalar as a label, a list holding
//     lists or mappings is one environment per element, and a mapping
//     adds each key as a label to every environment produced by its
//     value.
//  3. Variables. The "env" section feeds [EnvironmentDecorator]s. The
//     "global" decorator adds one shared variable set to every
//     environment; the "matrix" decorator clones every environment once
//     per listed "KEY=VALUE ..." string.
//  4. Commands. Each accepted build key is resolved against every
//     environment: scalars are commands, lists concatenate, and
//     mappings dispatch on labels of the environment. Every other
//     top-level key becomes a task resolved against the unspecified
//     environment.
package yamlmodel
