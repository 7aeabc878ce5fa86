package app

import (
	"encoding/json"
	"reflect"
)

// RuntimeFields are maintained by Marathon and never part of a desired
// definition.
var RuntimeFields = []string{
	"deployments",
	"tasksStaged",
	"tasksHealthy",
	"tasksRunning",
	"tasksUnhealthy",
	"version",
	"versionInfo",
	"tasks",
	"lastTaskFailure",
}

// EmptyOmittableFields are fields for which an empty value is equivalent to
// the field being absent.
var EmptyOmittableFields = []string{
	"gpus",
	"executor",
	"acceptedResourceRoles",
	"args",
	"fetch",
	"secrets",
	"cmd",
	"readinessChecks",
	"ipAddress",
	"uris",
	"constraints",
	"residency",
	"taskKillGracePeriodSeconds",
	"storeUrls",
	"dependencies",
	"user",
	"labels",
}

// Normalize removes all runtime fields, and all empty-omittable fields that
// hold an empty value, from def. It modifies def in place and returns it.
//
// Fields not listed in [RuntimeFields] or [EmptyOmittableFields] are left
// untouched. Normalize is idempotent.
func Normalize(def Definition) Definition {
	for _, field := range RuntimeFields {
		delete(def, field)
	}
	for _, field := range EmptyOmittableFields {
		if v, ok := def[field]; ok && IsEmpty(v) {
			delete(def, field)
		}
	}
	return def
}

// IsEmpty reports whether v is an empty value: nil, a zero-length string,
// list or mapping, or a number equal to zero. Values of any other type,
// including false, are never empty.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return false
	case string:
		return len(val) == 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case Definition:
		return len(val) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
