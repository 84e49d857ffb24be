// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package schema provides declarative validation over values. A Schema
// pairs an expected value type with an ordered set of rules; validation
// collects every violation into a recursive ValidError tree instead of
// stopping at the first. Schemas serialize to a strict JSON form keyed
// by rule name.
package schema
