// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package source locates byte ranges within template source text. A Span
references its Source so that errors can present the original text without
copying it.
*/
package source
