package domain

import (
	"encoding/json"
	"strings"

	"github.com/stitchworks/techpack-cli/internal/logger"
)

// Coerce validates a candidate value against the schema registry and
// repairs common shape mismatches. It never fails: the returned value
// always matches the declared shape of the target (section, field), and
// Coerce is idempotent over its own output. Repairs are logged.
//
// When field is non-empty the target is a single nested key of an
// object-shaped section; otherwise the whole section is replaced.
func Coerce(section, field string, candidate any) Value {
	if field != "" {
		if IsListField(section, field) {
			return coerceListField(section, field, candidate)
		}
		return coerceObjectField(section, field, candidate)
	}

	switch ShapeOf(section) {
	case ShapeList:
		return coerceList(section, candidate)
	case ShapeObject:
		return coerceObject(section, candidate)
	default:
		return coerceScalar(section, candidate)
	}
}

// coerceListField repairs a value destined for a list-valued field of an
// object-shaped section, e.g. colors.primaryColors. Elements are scalars.
func coerceListField(section, field string, candidate any) List {
	switch v := candidate.(type) {
	case nil:
		return List{}
	case List:
		out := make(List, 0, len(v))
		for _, el := range v {
			out = append(out, Scalar(Stringify(el)))
		}
		return out
	case []any:
		out := make(List, 0, len(v))
		for _, el := range v {
			out = append(out, Scalar(Stringify(el)))
		}
		return out
	case []string:
		out := make(List, 0, len(v))
		for _, el := range v {
			out = append(out, Scalar(el))
		}
		return out
	case string:
		logger.Debug("coerce: %s.%s: splitting string into list", section, field)
		return splitScalarList(v)
	case Scalar:
		return splitScalarList(string(v))
	default:
		logger.Debug("coerce: %s.%s: wrapping %T as single-element list", section, field, candidate)
		return List{Scalar(Stringify(candidate))}
	}
}

// coerceObjectField repairs a value destined for a non-list nested key of
// an object-shaped section, e.g. colors.colorNotes or dimensions.length.
// Mappings become nested objects of scalars; everything else a scalar.
func coerceObjectField(section, field string, candidate any) Value {
	switch v := candidate.(type) {
	case Object:
		return v.Clone()
	case map[string]any:
		return objectOfScalars(v)
	default:
		return Scalar(Stringify(candidate))
	}
}

// coerceList repairs a whole list-shaped section. Every element is
// normalised into a record carrying all required fields.
func coerceList(section string, candidate any) List {
	switch v := candidate.(type) {
	case nil:
		return List{}
	case List:
		out := make(List, 0, len(v))
		for _, el := range v {
			out = append(out, normaliseRecord(section, el))
		}
		return out
	case []any:
		out := make(List, 0, len(v))
		for _, el := range v {
			out = append(out, normaliseRecord(section, el))
		}
		return out
	case string:
		return coerceListString(section, v)
	case Scalar:
		return coerceListString(section, string(v))
	case Record:
		return List{normaliseRecord(section, v)}
	case map[string]any:
		return List{normaliseRecord(section, v)}
	default:
		logger.Debug("coerce: %s: wrapping %T as single-record list", section, candidate)
		return List{syntheticRecord(section, Stringify(candidate))}
	}
}

// coerceListString repairs a bare string supplied for a list-shaped
// section. A JSON array literal is parsed; otherwise the string is split
// on commas and each part becomes a synthetic record.
func coerceListString(section, s string) List {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			logger.Debug("coerce: %s: parsed string as list literal", section)
			out := make(List, 0, len(parsed))
			for _, el := range parsed {
				out = append(out, normaliseRecord(section, el))
			}
			return out
		}
	}

	logger.Debug("coerce: %s: splitting string into records", section)
	parts := splitScalarList(s)
	out := make(List, 0, len(parts))
	for _, p := range parts {
		out = append(out, syntheticRecord(section, string(p.(Scalar))))
	}
	return out
}

// coerceObject repairs a whole object-shaped section. An irreparable
// candidate (non-mapping) is discarded for the registry default, which is
// logged as a data-quality warning.
func coerceObject(section string, candidate any) Object {
	var fields map[string]any
	switch v := candidate.(type) {
	case Object:
		fields = make(map[string]any, len(v))
		for k, val := range v {
			fields[k] = val
		}
	case map[string]any:
		fields = v
	default:
		logger.Warn("coerce: %s: discarding %T candidate, substituting section default", section, candidate)
		return DefaultValueOf(section).(Object)
	}

	out := make(Object, len(fields))
	for k, val := range fields {
		switch {
		case IsListField(section, k):
			out[k] = coerceListField(section, k, val)
		default:
			out[k] = coerceObjectField(section, k, val)
		}
	}
	return out
}

// coerceScalar repairs a scalar-shaped section: non-strings are stringified.
func coerceScalar(section string, candidate any) Scalar {
	if _, ok := candidate.(string); !ok {
		if _, isScalar := candidate.(Scalar); !isScalar {
			logger.Debug("coerce: %s: stringifying %T candidate", section, candidate)
		}
	}
	return Scalar(Stringify(candidate))
}

// normaliseRecord turns one list element into a record that carries every
// required field of the section, defaulting missing fields to "".
func normaliseRecord(section string, el any) Record {
	switch v := el.(type) {
	case Record:
		return fillRecord(section, v.Clone().(Record))
	case map[string]any:
		rec := make(Record, len(v))
		for k, val := range v {
			rec[k] = Stringify(val)
		}
		return fillRecord(section, rec)
	case Object:
		rec := make(Record, len(v))
		for k, val := range v {
			rec[k] = Stringify(val)
		}
		return fillRecord(section, rec)
	default:
		return syntheticRecord(section, Stringify(el))
	}
}

// syntheticRecord builds a record from a bare string, placing the text in
// the section's primary record field.
func syntheticRecord(section, text string) Record {
	rec := make(Record)
	if primary := PrimaryRecordField(section); primary != "" {
		rec[primary] = strings.TrimSpace(text)
	}
	return fillRecord(section, rec)
}

// fillRecord ensures every required record field is present.
func fillRecord(section string, rec Record) Record {
	for _, f := range RecordFieldsOf(section) {
		if _, ok := rec[f]; !ok {
			rec[f] = ""
		}
	}
	return rec
}

// objectOfScalars converts an arbitrary mapping into a nested Object
// whose leaves are all scalars.
func objectOfScalars(m map[string]any) Object {
	out := make(Object, len(m))
	for k, v := range m {
		switch nested := v.(type) {
		case map[string]any:
			out[k] = objectOfScalars(nested)
		case Object:
			out[k] = nested.Clone()
		default:
			out[k] = Scalar(Stringify(v))
		}
	}
	return out
}

// splitScalarList splits a comma-separated string into trimmed, non-empty
// scalar elements.
func splitScalarList(s string) List {
	parts := strings.Split(s, ",")
	out := make(List, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, Scalar(p))
	}
	return out
}
