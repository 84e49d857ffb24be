// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a string-keyed map that maintains insertion order
(unlike the native Go map).

This flavor of map keeps struct fields, object literals, and schema field
sets deterministic and stable.
*/
package orderedmap
