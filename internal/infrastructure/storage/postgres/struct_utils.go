package postgres

import (
	"reflect"
	"slices"
	"sync"
)

// ExtractDBColumns extracts all column names from struct "db" tags.
// It handles embedded structs recursively.
// It is called once per document type at initialization time.
//
// Usage:
//
//	columns := ExtractDBColumns[userDocument]()
//	// Returns: ["_id", "id", "name", "password_hash", "created_at"]
func ExtractDBColumns[T any]() []string {
	var zero T
	return extractColumnsFromType(reflect.TypeOf(zero))
}

func extractColumnsFromType(t reflect.Type) []string {
	meta := getOrCreateTypeMetadata(t)

	cols := make([]string, 0, len(meta.fields))
	for _, fi := range meta.fields {
		if fi.embedded {
			cols = append(cols, extractColumnsFromType(fi.typ)...)
			continue
		}
		cols = append(cols, fi.dbTag)
	}
	return cols
}

// fieldInfo contains pre-computed metadata about a struct field.
type fieldInfo struct {
	index    int
	dbTag    string
	embedded bool
	typ      reflect.Type
}

// typeMetadata contains cached reflection metadata for a type.
type typeMetadata struct {
	fields []fieldInfo // in declaration order
}

// typeCache maps reflect.Type to *typeMetadata.
var typeCache sync.Map

// getOrCreateTypeMetadata returns cached metadata or creates it if not exists.
func getOrCreateTypeMetadata(t reflect.Type) *typeMetadata {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)

			if field.Anonymous {
				meta.fields = append(meta.fields, fieldInfo{index: i, embedded: true, typ: field.Type})
				continue
			}

			tag := field.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			meta.fields = append(meta.fields, fieldInfo{index: i, dbTag: tag, typ: field.Type})
		}
	}

	actual, _ := typeCache.LoadOrStore(t, meta)
	return actual.(*typeMetadata)
}

// StructToMap converts a struct to a column map using "db" tags.
// Columns named in omit are left out, which keeps store-generated
// columns out of inserts.
func StructToMap(v any, omit ...string) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]any)
	collectColumns(rv, omit, res)
	return res
}

// collectColumns walks rv as a reflect.Value so that exported fields of
// unexported embedded structs stay reachable.
func collectColumns(rv reflect.Value, omit []string, res map[string]any) {
	for _, fi := range getOrCreateTypeMetadata(rv.Type()).fields {
		field := rv.Field(fi.index)
		if fi.embedded {
			if field.Kind() == reflect.Ptr {
				if field.IsNil() {
					continue
				}
				field = field.Elem()
			}
			if field.Kind() == reflect.Struct {
				collectColumns(field, omit, res)
			}
			continue
		}
		if slices.Contains(omit, fi.dbTag) {
			continue
		}
		res[fi.dbTag] = field.Interface()
	}
}
