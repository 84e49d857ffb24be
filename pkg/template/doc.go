// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package template implements the ett template language: literal text
// interleaved with {{ ... }} interpolations and @if, @for, @match, and
// @include directives. Templates parse into an immutable AST and render
// against a Scope of variables, pipes, functions, and sub-templates.
// Rendering fails fast; every error carries a source span.
package template
