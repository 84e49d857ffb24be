package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"carvel.dev/ett/pkg/template"
	"carvel.dev/ett/pkg/value"
)

// newBuiltinScope returns a scope preloaded with the pipes available to
// every rendered template.
func newBuiltinScope() *template.Scope {
	scope := template.NewScope()
	scope.SetPipe("upper", stringPipe("upper", strings.ToUpper))
	scope.SetPipe("lower", stringPipe("lower", strings.ToLower))
	scope.SetPipe("trim", stringPipe("trim", strings.TrimSpace))
	scope.SetPipe("len", template.PipeFunc(lenPipe))
	scope.SetPipe("join", template.PipeFunc(joinPipe))
	scope.SetPipe("default", template.PipeFunc(defaultPipe))
	return scope
}

func stringPipe(name string, f func(string) string) template.Pipe {
	return template.PipeFunc(func(this value.Value, args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return value.Value{}, fmt.Errorf("%s: expected no arguments, received %d", name, len(args))
		}
		if !this.IsString() {
			return value.Value{}, fmt.Errorf("%s: expected String, received %s", name, this.TypeName())
		}
		return value.NewString(f(this.AsString())), nil
	})
}

func lenPipe(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("len: expected no arguments, received %d", len(args))
	}
	switch {
	case this.IsString():
		return value.NewInt64(int64(utf8.RuneCountInString(this.AsString()))), nil
	case this.IsObject():
		return value.NewInt64(int64(this.AsObject().Len())), nil
	default:
		return value.Value{}, fmt.Errorf("len: expected String or Object, received %s", this.TypeName())
	}
}

func joinPipe(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("join: expected exactly one argument, received %d", len(args))
	}
	if !args[0].IsString() {
		return value.Value{}, fmt.Errorf("join: expected String separator, received %s", args[0].TypeName())
	}
	if !this.IsArray() {
		return value.Value{}, fmt.Errorf("join: expected Array, received %s", this.TypeName())
	}

	arr := this.AsArray()
	pieces := make([]string, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		item, _ := arr.Index(i)
		pieces = append(pieces, item.AsValue().String())
	}
	return value.NewString(strings.Join(pieces, args[0].AsString())), nil
}

func defaultPipe(this value.Value, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("default: expected exactly one argument, received %d", len(args))
	}
	if this.IsNull() {
		return args[0], nil
	}
	return this, nil
}
