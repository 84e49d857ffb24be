// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package value implements a dynamically-typed, owned data model: nulls,
booleans, width-preserving numbers, strings, and object containers (structs,
arrays, tuples) shared by reference.

Containers hold immutable capability implementations; cloning a Value never
deep-copies user data.
*/
package value
