// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template_test

import (
	"fmt"
	"math"
	"testing"

	"carvel.dev/ett/pkg/template"
	"carvel.dev/ett/pkg/value"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, contents string, scope *template.Scope) (string, error) {
	t.Helper()
	tmpl, err := template.Parse("eval.ett", contents)
	require.NoError(t, err)
	return tmpl.Render(scope)
}

func requireEval(t *testing.T, expr string, scope *template.Scope, expected string) {
	t.Helper()
	result, err := render(t, "{{ "+expr+" }}", scope)
	require.NoError(t, err, expr)
	require.Equal(t, expected, result, expr)
}

func requireEvalErr(t *testing.T, expr string, scope *template.Scope, kind string) {
	t.Helper()
	_, err := render(t, "{{ "+expr+" }}", scope)
	require.Error(t, err, expr)
	evalErr, ok := template.Inner(err).(template.EvalError)
	require.True(t, ok, expr)
	require.Equal(t, kind, evalErr.Kind(), expr)
}

func TestEvalArithmetic(t *testing.T) {
	scope := template.NewScope()
	requireEval(t, "1 + 2 * 3", scope, "7")
	requireEval(t, "(1 + 2) * 3", scope, "9")
	requireEval(t, "7 / 2", scope, "3")
	requireEval(t, "7 % 2", scope, "1")
	requireEval(t, "7.0 / 2", scope, "3.5")
	requireEval(t, "1 - 2", scope, "-1")
	requireEval(t, "-(1 + 2)", scope, "-3")
}

func TestEvalComparisonPrecedence(t *testing.T) {
	requireEval(t, "1 < 2 && 3 > 1", template.NewScope(), "true")
}

func TestEvalStringConcat(t *testing.T) {
	scope := template.NewScope()
	requireEval(t, "'n=' + 1", scope, "n=1")
	requireEval(t, "1 + '!'", scope, "1!")
	requireEval(t, "'a' + 'b'", scope, "ab")
	requireEval(t, "'v: ' + null", scope, "v: <null>")
}

func TestEvalShortCircuitReturnsDecidingValue(t *testing.T) {
	scope := template.NewScope()
	requireEval(t, "'' || 'fallback'", scope, "fallback")
	requireEval(t, "'set' || 'fallback'", scope, "set")
	requireEval(t, "0 && boom()", scope, "0")
	requireEval(t, "null || 'x'", scope, "x")
	requireEval(t, "1 && 'right'", scope, "right")
}

func TestEvalTruthiness(t *testing.T) {
	scope := template.NewScope().
		SetVar("empty", value.NewArray(nil)).
		SetVar("full", value.MustValue([]interface{}{1}))
	requireEval(t, "!null", scope, "true")
	requireEval(t, "!0", scope, "true")
	requireEval(t, "!''", scope, "true")
	requireEval(t, "!empty", scope, "true")
	requireEval(t, "!full", scope, "false")
	requireEval(t, "!0.0", scope, "true")
}

func TestEvalOrderingAcrossWidths(t *testing.T) {
	scope := template.NewScope().
		SetVar("i", value.NewInt8(2)).
		SetVar("f", value.NewFloat64(2.5))
	requireEval(t, "i < f", scope, "true")
	requireEval(t, "i <= 2", scope, "true")
	requireEval(t, "'a' < 'b'", scope, "true")
	// incomparable mixes are false for every ordering operator
	requireEval(t, "'a' < 1", scope, "false")
	requireEval(t, "'a' >= 1", scope, "false")
}

func TestEvalEquality(t *testing.T) {
	scope := template.NewScope()
	requireEval(t, "1 == 1.0", scope, "true")
	requireEval(t, "'x' != 'y'", scope, "true")
	requireEval(t, "[1, 2] == [1, 2]", scope, "true")
	requireEval(t, "{a: 1} == {a: 1}", scope, "true")
}

func TestEvalDivisionByZero(t *testing.T) {
	scope := template.NewScope()
	requireEvalErr(t, "1 / 0", scope, "DivisionByZero")
	requireEvalErr(t, "1 % 0", scope, "DivisionByZero")
	requireEvalErr(t, "1.5 / 0", scope, "DivisionByZero")
}

func TestEvalOverflow(t *testing.T) {
	scope := template.NewScope().
		SetVar("max", value.NewInt64(math.MaxInt64)).
		SetVar("min", value.NewInt64(math.MinInt64)).
		SetVar("big", value.NewUint64(math.MaxUint64))
	requireEvalErr(t, "max + 1", scope, "Overflow")
	requireEvalErr(t, "min - 1", scope, "Overflow")
	requireEvalErr(t, "max * 2", scope, "Overflow")
	requireEvalErr(t, "min * -1", scope, "Overflow")
	requireEvalErr(t, "-1 * min", scope, "Overflow")
	requireEvalErr(t, "min / -1", scope, "Overflow")
	requireEvalErr(t, "big + 0", scope, "Overflow")
	requireEvalErr(t, "-min", scope, "Overflow")
}

func TestEvalTypeErrors(t *testing.T) {
	scope := template.NewScope()
	requireEvalErr(t, "true + 1", scope, "TypeError")
	requireEvalErr(t, "-'x'", scope, "TypeError")
	requireEvalErr(t, "'x'.field", scope, "TypeError")
	requireEvalErr(t, "'x'[0]", scope, "TypeError")
}

func TestEvalMemberAndIndex(t *testing.T) {
	scope := template.NewScope().
		SetVar("obj", value.MustValue(map[string]interface{}{"name": "ett"})).
		SetVar("xs", value.MustValue([]interface{}{10, 20}))
	requireEval(t, "obj.name", scope, "ett")
	requireEval(t, "xs[1]", scope, "20")
	requireEval(t, "xs[xs[0] / 10 - 1]", scope, "10")

	requireEvalErr(t, "obj.absent", scope, "UndefinedField")
	requireEvalErr(t, "xs[2]", scope, "IndexOutOfBounds")
	requireEvalErr(t, "xs[-1]", scope, "InvalidIndex")
	requireEvalErr(t, "xs[1.5]", scope, "InvalidIndex")
}

func TestEvalUndefinedLookups(t *testing.T) {
	scope := template.NewScope()
	requireEvalErr(t, "missing", scope, "UndefinedVariable")
	requireEvalErr(t, "1 | missing", scope, "UndefinedPipe")
	requireEvalErr(t, "missing()", scope, "NotCallable")
}

func TestEvalCallAndPipeArgs(t *testing.T) {
	scope := template.NewScope().
		SetFunc("add", template.FuncFunc(func(args []value.Value) (value.Value, error) {
			sum := int64(0)
			for _, arg := range args {
				sum += arg.AsNumber().ToInt64()
			}
			return value.NewInt64(sum), nil
		})).
		SetPipe("repeat", template.PipeFunc(func(this value.Value, args []value.Value) (value.Value, error) {
			result := ""
			for i := int64(0); i < args[0].AsNumber().ToInt64(); i++ {
				result += this.AsString()
			}
			return value.NewString(result), nil
		}))
	requireEval(t, "add(1, 2, 3)", scope, "6")
	requireEval(t, "'ab' | repeat: 2", scope, "abab")
	requireEval(t, "add() + 1", scope, "1")
}

func TestEvalCallableErrorGetsSpan(t *testing.T) {
	scope := template.NewScope().
		SetFunc("boom", template.FuncFunc(func([]value.Value) (value.Value, error) {
			return value.Value{}, fmt.Errorf("exploded")
		}))

	_, err := render(t, "{{ boom() }}", scope)
	require.Error(t, err)
	require.Contains(t, err.Error(), "eval error at ")
	require.Contains(t, err.Error(), "exploded")
	require.Equal(t, "exploded", template.Inner(err).Error())
}

func TestEvalIntegerArithmeticStaysInteger(t *testing.T) {
	scope := template.NewScope().
		SetVar("u", value.NewUint8(200)).
		SetVar("i", value.NewInt8(100))
	requireEval(t, "u + i", scope, "300")
	requireEval(t, "10 / 4", scope, "2")
	requireEval(t, "10.0 / 4", scope, "2.5")
}
