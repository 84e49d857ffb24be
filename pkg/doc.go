// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of ett.

From top-down, ett code is layered in this way:

# Entry Point

ett is built into a single command-line tool:

	./cmd/ett

# Commands

There are three commands: "render" evaluates a template against data values,
"validate" checks a JSON document against a schema, and "version" prints the
build version.

	pkg/cmd

# Templating

The heart of ett's action is expression-based text templating. Source text is
lexed in two modes (plain text and expressions), parsed into an AST with
source spans, and rendered against a Scope of variables, pipes, functions,
and named sub-templates.

	pkg/template

# Validation

ett can enrich dynamically-typed values with fine-grained data typing and
user-defined constraints.

	pkg/schema

# Values

Both templating and validation operate on a single dynamic value
representation: a tagged sum over null, booleans, width-preserving numbers,
strings, and objects (structs, arrays, tuples).

	pkg/value

# Utilities

The remainder are domain-agnostic utilities:

	pkg/cmd/ui
	pkg/orderedmap
	pkg/source
	pkg/version
*/
package pkg
