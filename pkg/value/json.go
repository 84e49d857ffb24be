// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"carvel.dev/ett/pkg/orderedmap"
)

// MarshalJSON encodes a Value as JSON. Structs encode as objects in field
// order; arrays and tuples both encode as JSON arrays. Numbers encode in
// their canonical decimal form so widths survive a round trip through
// UnmarshalJSON only as far as JSON can express them (Int64/Float64).
func MarshalJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	err := writeJSON(&buf, v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.Kind() {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.AsBool()))
	case NumberValueKind:
		num := v.AsNumber()
		if num.IsFloat() {
			f := num.ToFloat64()
			if f != f || f > maxJSONFloat || f < -maxJSONFloat {
				return fmt.Errorf("Unable to encode %s as JSON", num)
			}
		}
		buf.WriteString(num.String())
	case StringKind:
		encoded, err := json.Marshal(v.AsString())
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case ObjectValueKind:
		return writeJSONObject(buf, v.AsObject())
	}
	return nil
}

const maxJSONFloat = 1.7976931348623157e308

func writeJSONObject(buf *bytes.Buffer, o Object) error {
	if o.IsStruct() {
		buf.WriteString("{")
		var iterErr error
		first := true
		o.AsStruct().Iterate(func(id Ident, item AsValuer) {
			if iterErr != nil {
				return
			}
			if !first {
				buf.WriteString(",")
			}
			first = false
			key, err := json.Marshal(id.String())
			if err != nil {
				iterErr = err
				return
			}
			buf.Write(key)
			buf.WriteString(":")
			iterErr = writeJSON(buf, item.AsValue())
		})
		if iterErr != nil {
			return iterErr
		}
		buf.WriteString("}")
		return nil
	}

	var arr Array
	if o.IsTuple() {
		arr = o.AsTuple()
	} else {
		arr = o.AsArray()
	}
	buf.WriteString("[")
	var iterErr error
	first := true
	arr.Iterate(func(item AsValuer) {
		if iterErr != nil {
			return
		}
		if !first {
			buf.WriteString(",")
		}
		first = false
		iterErr = writeJSON(buf, item.AsValue())
	})
	if iterErr != nil {
		return iterErr
	}
	buf.WriteString("]")
	return nil
}

// UnmarshalJSON decodes JSON into a Value, preserving object key order.
// Integers without a fraction or exponent decode as Int64; all other
// numbers decode as Float64.
func UnmarshalJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	result, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	_, err = dec.Token()
	if err != io.EOF {
		return Value{}, fmt.Errorf("Expected single JSON value, found trailing content")
	}
	return result, nil
}

// DecodeJSONValue reads the next complete JSON value from a decoder that
// was configured with UseNumber. It lets other codecs embed Values in
// their own token streams.
func DecodeJSONValue(dec *json.Decoder) (Value, error) {
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch typedTok := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(typedTok), nil
	case string:
		return NewString(typedTok), nil
	case json.Number:
		return decodeNumber(typedTok)
	case json.Delim:
		switch typedTok {
		case '{':
			return decodeStruct(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return Value{}, fmt.Errorf("Unexpected JSON token %v", tok)
}

func decodeNumber(num json.Number) (Value, error) {
	str := num.String()
	if !strings.ContainsAny(str, ".eE") {
		i, err := num.Int64()
		if err == nil {
			return NewInt64(i), nil
		}
	}
	f, err := num.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("Parsing JSON number '%s': %s", str, err)
	}
	return NewFloat64(f), nil
}

func decodeStruct(dec *json.Decoder) (Value, error) {
	result := orderedmap.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("Unexpected JSON object key %v", keyTok)
		}
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		result.Set(key, item)
	}
	_, err := dec.Token() // closing brace
	if err != nil {
		return Value{}, err
	}
	return NewStructMap(result), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	_, err := dec.Token() // closing bracket
	if err != nil {
		return Value{}, err
	}
	return NewArray(items), nil
}
