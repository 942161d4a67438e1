// Package serializer converts between the JSON wire representation and the
// domain entities. Decoders validate every client-writable field and ignore
// read-only ones (id, created_at, updated_at, total_price); encoders produce
// the read representation including derived fields.
package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"rental-backend/internal/domain"
	"rental-backend/internal/pkg/validation"
)

// Money is a decimal(10,2) amount; it marshals as a JSON number with exactly
// two decimals.
type Money float64

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', 2, 64)), nil
}

// Tenths is a decimal(3,1) amount such as a bathroom count.
type Tenths float64

func (t Tenths) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(t), 'f', 1, 64)), nil
}

// decode unmarshals data into dst and validates it. A malformed document is
// reported under non_field_errors; type mismatches and rule failures are
// merged into one field-keyed map, empty when dst is valid. Keys must match
// dst's json names exactly; any other key is ignored.
func decode(data []byte, dst interface{}) map[string]string {
	fields := map[string]string{}
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(exactKeys(data, dst), dst); err != nil {
		if !errors.As(err, &typeErr) {
			fields[domain.NonFieldErrors] = "JSON parse error - " + err.Error()
			return fields
		}
		if typeErr.Field == "" {
			fields[domain.NonFieldErrors] = "Invalid data. Expected an object, but got " + typeErr.Value + "."
			return fields
		}
	}
	for k, v := range validation.Struct(dst) {
		fields[k] = v
	}
	if typeErr != nil {
		fields[typeErr.Field] = typeMessage(typeErr.Type)
	}
	return fields
}

// exactKeys drops object members whose name is not one of dst's json names,
// keeping the rest in order. encoding/json would otherwise bind "TITLE" to the
// "title" field. Anything that is not a well-formed object is returned as is.
func exactKeys(data []byte, dst interface{}) []byte {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return data
	}
	known := jsonNames(reflect.TypeOf(dst))
	var buf bytes.Buffer
	buf.WriteByte('{')
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return data
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return data
		}
		if !known[key] {
			continue
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	if _, err := dec.Token(); err != nil {
		return data
	}
	if len(bytes.TrimSpace(data[dec.InputOffset():])) > 0 {
		return data
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func jsonNames(t reflect.Type) map[string]bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	names := map[string]bool{}
	if t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	}
	return "Incorrect type."
}

func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}
