// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
)

// Source is a named piece of template text. It is shared by pointer between
// every Span cut from it; the contents are never mutated after construction.
type Source struct {
	name     string
	contents string
}

func NewSource(name, contents string) *Source {
	return &Source{name: name, contents: contents}
}

func (s *Source) Name() string { return s.name }

func (s *Source) Contents() string { return s.contents }

func (s *Source) Len() int { return len(s.contents) }

// Span is a byte-offset range [Start, End) into a Source.
type Span struct {
	Start int
	End   int

	source *Source
}

func NewSpan(start, end int, src *Source) Span {
	return Span{Start: start, End: end, source: src}
}

func (s Span) Source() *Source { return s.source }

// Text returns the source text the span covers. Unknown sources and
// out-of-range spans yield "".
func (s Span) Text() string {
	if s.source == nil || s.Start < 0 || s.End > len(s.source.contents) || s.Start > s.End {
		return ""
	}
	return s.source.contents[s.Start:s.End]
}

// Merge returns the smallest span covering both s and other. The receiver's
// source wins when the two differ.
func (s Span) Merge(other Span) Span {
	merged := s
	if other.Start < merged.Start {
		merged.Start = other.Start
	}
	if other.End > merged.End {
		merged.End = other.End
	}
	return merged
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
