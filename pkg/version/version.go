// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the semantic version of this build. It is overridden
// at link time for release builds.
var Version = "0.1.0"
