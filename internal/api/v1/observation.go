package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reserved top-level keys of an observation. Every other key is a property.
const (
	fieldModel = "model"
	fieldID    = "id"
	fieldTime  = "time"
	fieldName  = "name"
	fieldType  = "type"
	fieldArea  = "area"
)

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Observation is one telemetry reading from a device.
//
// On the wire it is a flat JSON object: model, id and time are reserved keys,
// the optional name, type and area describe the device, and every other key
// is a property of the reading.
type Observation struct {
	// Model is the device model reported by the radio decoder or gateway.
	Model string

	// ID is the device identifier within the model. Numeric ids are kept
	// in their decimal form.
	ID string

	// Time is when the reading was taken. Zero means "when received".
	Time time.Time

	Name string
	Type string
	Area string

	Properties map[string]any
}

// UnmarshalJSON splits reserved keys from free-form properties.
func (o *Observation) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("observation must be a JSON object")
	}

	var (
		obs Observation
		err error
	)
	if obs.Model, err = stringField(raw, fieldModel); err != nil {
		return err
	}
	if obs.ID, err = stringField(raw, fieldID); err != nil {
		return err
	}
	if obs.Name, err = stringField(raw, fieldName); err != nil {
		return err
	}
	if obs.Type, err = stringField(raw, fieldType); err != nil {
		return err
	}
	if obs.Area, err = stringField(raw, fieldArea); err != nil {
		return err
	}
	if v, ok := raw[fieldTime]; ok && v != nil {
		if obs.Time, err = parseTime(v); err != nil {
			return err
		}
	}

	for _, k := range []string{fieldModel, fieldID, fieldTime, fieldName, fieldType, fieldArea} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		obs.Properties = normalizeNumbers(raw).(map[string]any)
	}

	*o = obs
	return nil
}

// MarshalJSON writes the flat wire form.
func (o Observation) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(o.Properties)+6)
	for k, v := range o.Properties {
		out[k] = v
	}
	out[fieldModel] = o.Model
	out[fieldID] = o.ID
	if !o.Time.IsZero() {
		out[fieldTime] = o.Time.UTC().Format(time.RFC3339Nano)
	}
	if o.Name != "" {
		out[fieldName] = o.Name
	}
	if o.Type != "" {
		out[fieldType] = o.Type
	}
	if o.Area != "" {
		out[fieldArea] = o.Area
	}
	return json.Marshal(out)
}

// Validate ensures the observation identifies its device.
func (o *Observation) Validate() error {
	if strings.TrimSpace(o.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// Payload returns the observation as a generic JSON object, reserved keys
// included, for structure fingerprinting.
func (o *Observation) Payload() map[string]any {
	out := make(map[string]any, len(o.Properties)+3)
	for k, v := range o.Properties {
		out[k] = v
	}
	out[fieldModel] = o.Model
	out[fieldID] = o.ID
	out[fieldTime] = o.Time
	return out
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("%s must be a string or number", key)
	}
}

func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("time %q is not a recognized timestamp", t)
	case json.Number:
		secs, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("time %q is not a number: %w", t, err)
		}
		whole := int64(secs)
		return time.Unix(whole, int64((secs-float64(whole))*1e9)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("time must be a string or epoch seconds")
	}
}

// normalizeNumbers turns json.Number into int64 when integral, else float64.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	default:
		return v
	}
}
