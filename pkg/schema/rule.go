// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"sort"

	"carvel.dev/ett/pkg/value"
)

// Rule is a single named predicate over a value. A rule either accepts the
// value (possibly returning a coerced replacement) or reports a ValidError.
type Rule interface {
	Key() string
	Phase() Phase
	Validate(ctx Context) (value.Value, *ValidError)
}

// RuleSet is an ordered collection of rules. Insertion order is preserved
// and, within a phase, is the evaluation order.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

func (rs *RuleSet) Append(rule Rule) {
	rs.rules = append(rs.rules, rule)
}

func (rs *RuleSet) Rules() []Rule { return rs.rules }

func (rs *RuleSet) Len() int { return len(rs.rules) }

// Find returns the first rule with the given key.
func (rs *RuleSet) Find(key string) (Rule, bool) {
	for _, rule := range rs.rules {
		if rule.Key() == key {
			return rule, true
		}
	}
	return nil, false
}

// Validate runs every rule in (phase, insertion) order, threading the
// possibly-coerced value through successful rules and collecting failures.
// Null values see only Presence-phase rules. Returns the final value when
// no rule failed, otherwise an aggregate error at the context's path.
func (rs *RuleSet) Validate(ctx Context) (value.Value, *ValidError) {
	ordered := make([]Rule, len(rs.rules))
	copy(ordered, rs.rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Phase() < ordered[j].Phase()
	})

	current := ctx.Value
	var errs []*ValidError

	for _, rule := range ordered {
		if current.IsNull() && rule.Phase() != PresencePhase {
			continue
		}
		result, err := rule.Validate(ctx.WithRule(rule.Key()).WithValue(current))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		current = result
	}

	if len(errs) > 0 {
		return ctx.Value, newAggregateError(ctx.Path, errs)
	}
	return current, nil
}
