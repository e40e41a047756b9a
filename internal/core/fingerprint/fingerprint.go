// Package fingerprint computes deterministic SHA-256 digests of payloads.
//
// Two modes exist. Structure fingerprints erase every leaf value down to its
// JSON type so payloads with the same shape collide on purpose. Identity
// fingerprints hash an ordered set of named fields verbatim.
package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Leaf type tags written in place of values by Structure.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeArray   = "array"
	TypeUnknown = "unknown"
)

// Shape is the canonical structure descriptor of a payload and its digest.
type Shape struct {
	Descriptor  string
	Fingerprint string
}

// Field is one named input to an identity fingerprint.
type Field struct {
	Name  string
	Value any
}

// Digest returns the lowercase hex SHA-256 of b.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Structure replaces every leaf of a decoded JSON value with its type tag.
// Objects are kept (their keys are sorted on serialization), arrays collapse to TypeArray.
func Structure(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Structure(child)
		}
		return out
	case []any:
		return TypeArray
	case string:
		return TypeString
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case nil:
		return TypeNull
	default:
		return TypeUnknown
	}
}

// StructureOfJSON canonicalizes raw JSON into its structure descriptor.
// Whitespace and key order in raw do not affect the result.
func StructureOfJSON(raw []byte) (Shape, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return Shape{}, fmt.Errorf("decode payload: %w", err)
	}

	// encoding/json writes map keys in sorted order at every level.
	descriptor, err := json.Marshal(Structure(tree))
	if err != nil {
		return Shape{}, fmt.Errorf("encode structure: %w", err)
	}

	return Shape{
		Descriptor:  string(descriptor),
		Fingerprint: Digest(descriptor),
	}, nil
}

// StructureOf serializes payload to JSON and returns its structure descriptor.
func StructureOf(payload any) (Shape, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Shape{}, fmt.Errorf("encode payload: %w", err)
	}
	return StructureOfJSON(raw)
}

// Identity hashes the given fields as a JSON object written in argument order.
// Field values are not type-erased; nested maps are written with sorted keys.
func Identity(fields ...Field) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return "", fmt.Errorf("encode field name %q: %w", f.Name, err)
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return "", fmt.Errorf("encode field %q: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return Digest(buf.Bytes()), nil
}

// DeviceIdentity is the identity fingerprint used for observation counting.
func DeviceIdentity(model, deviceID string) string {
	// Strings always encode, so the error path is unreachable.
	fp, _ := Identity(Field{Name: "model", Value: model}, Field{Name: "deviceId", Value: deviceID})
	return fp
}
