// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"carvel.dev/ett/pkg/orderedmap"
	"carvel.dev/ett/pkg/value"
)

// MarshalJSON encodes a schema as a JSON object: a "type" key first, then
// one key per rule in insertion order. Decoding the result with
// UnmarshalJSON yields an equivalent schema.
func MarshalJSON(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	err := writeSchema(&buf, s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSchema(buf *bytes.Buffer, s *Schema) error {
	fmt.Fprintf(buf, `{"type":%q`, s.typ.String())
	for _, rule := range s.rules.Rules() {
		fmt.Fprintf(buf, ",%q:", rule.Key())
		err := writeRule(buf, rule)
		if err != nil {
			return err
		}
	}
	buf.WriteString("}")
	return nil
}

func writeRule(buf *bytes.Buffer, rule Rule) error {
	switch typedRule := rule.(type) {
	case RequiredRule:
		fmt.Fprintf(buf, "%t", typedRule.Required)
		return nil

	case EqualsRule:
		return writeValue(buf, typedRule.Expected)

	case OptionsRule:
		buf.WriteString("[")
		for i, opt := range typedRule.Options {
			if i > 0 {
				buf.WriteString(",")
			}
			err := writeValue(buf, opt)
			if err != nil {
				return err
			}
		}
		buf.WriteString("]")
		return nil

	case MinRule:
		buf.WriteString(formatBound(typedRule.Bound))
		return nil

	case MaxRule:
		buf.WriteString(formatBound(typedRule.Bound))
		return nil

	case PatternRule:
		encoded, err := json.Marshal(typedRule.Expr)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil

	case ItemsRule:
		return writeSchema(buf, typedRule.Item)

	case FieldsRule:
		buf.WriteString("{")
		var iterErr error
		first := true
		typedRule.Fields.Iterate(func(name string, item interface{}) {
			if iterErr != nil {
				return
			}
			if !first {
				buf.WriteString(",")
			}
			first = false
			fmt.Fprintf(buf, "%q:", name)
			iterErr = writeSchema(buf, item.(*Schema))
		})
		if iterErr != nil {
			return iterErr
		}
		buf.WriteString("}")
		return nil

	default:
		return fmt.Errorf("Unknown rule '%s'", rule.Key())
	}
}

func writeValue(buf *bytes.Buffer, v value.Value) error {
	encoded, err := value.MarshalJSON(v)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

// ruleDecoders maps rule names to token-stream decoders. Decoding is
// strict: a key outside this registry (other than the leading "type") is
// an error.
var ruleDecoders map[string]func(dec *json.Decoder) (Rule, error)

func init() {
	ruleDecoders = map[string]func(dec *json.Decoder) (Rule, error){
		RequiredKey: decodeRequired,
		EqualsKey:   decodeEquals,
		OptionsKey:  decodeOptions,
		MinKey:      decodeBound(func(bound float64) Rule { return MinRule{Bound: bound} }),
		MaxKey:      decodeBound(func(bound float64) Rule { return MaxRule{Bound: bound} }),
		PatternKey:  decodePattern,
		ItemsKey:    decodeItems,
		FieldsKey:   decodeFields,
	}
}

// UnmarshalJSON decodes the strict JSON schema form, preserving rule
// order.
func UnmarshalJSON(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	result, err := decodeSchema(dec)
	if err != nil {
		return nil, err
	}

	_, err = dec.Token()
	if err != io.EOF {
		return nil, fmt.Errorf("Expected single JSON schema, found trailing content")
	}
	return result, nil
}

func decodeSchema(dec *json.Decoder) (*Schema, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("Expected schema object, found %v", tok)
	}

	var result *Schema
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		if result == nil {
			if key != "type" {
				return nil, fmt.Errorf("Expected 'type' as first schema key, found '%s'", key)
			}
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, ok := nameTok.(string)
			if !ok {
				return nil, fmt.Errorf("Expected schema type name, found %v", nameTok)
			}
			typ, err := parseType(name)
			if err != nil {
				return nil, err
			}
			result = newSchema(typ)
			continue
		}

		decodeRule, found := ruleDecoders[key]
		if !found {
			return nil, fmt.Errorf("Unknown rule '%s'", key)
		}
		rule, err := decodeRule(dec)
		if err != nil {
			return nil, fmt.Errorf("Decoding rule '%s': %s", key, err)
		}
		result.rules.Append(rule)
	}

	_, err = dec.Token() // closing brace
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("Expected 'type' key in schema object")
	}
	return result, nil
}

func decodeRequired(dec *json.Decoder) (Rule, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	required, ok := tok.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, found %v", tok)
	}
	return RequiredRule{Required: required}, nil
}

func decodeEquals(dec *json.Decoder) (Rule, error) {
	expected, err := value.DecodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	return EqualsRule{Expected: expected}, nil
}

func decodeOptions(dec *json.Decoder) (Rule, error) {
	decoded, err := value.DecodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if !decoded.IsArray() {
		return nil, fmt.Errorf("expected array, found %s", decoded.TypeName())
	}
	var opts []value.Value
	decoded.AsArray().Iterate(func(item value.AsValuer) {
		opts = append(opts, item.AsValue())
	})
	return OptionsRule{Options: opts}, nil
}

func decodeBound(build func(bound float64) Rule) func(dec *json.Decoder) (Rule, error) {
	return func(dec *json.Decoder) (Rule, error) {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected number, found %v", tok)
		}
		bound, err := num.Float64()
		if err != nil {
			return nil, err
		}
		return build(bound), nil
	}
}

func decodePattern(dec *json.Decoder) (Rule, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	expr, ok := tok.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, found %v", tok)
	}
	return NewPatternRule(expr), nil
}

func decodeItems(dec *json.Decoder) (Rule, error) {
	item, err := decodeSchema(dec)
	if err != nil {
		return nil, err
	}
	return ItemsRule{Item: item}, nil
}

func decodeFields(dec *json.Decoder) (Rule, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, found %v", tok)
	}

	fields := orderedmap.NewMap()
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		field, err := decodeSchema(dec)
		if err != nil {
			return nil, err
		}
		fields.Set(nameTok.(string), field)
	}
	_, err = dec.Token() // closing brace
	if err != nil {
		return nil, err
	}
	return FieldsRule{Fields: fields}, nil
}
