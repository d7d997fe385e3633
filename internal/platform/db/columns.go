package db

import (
	"fmt"
	"reflect"
	"strings"
)

// Columns returns the db-tagged fields of a struct (or pointer to struct) with their values.
// Nil pointer fields are skipped so the column keeps its database default on insert and
// its current value on update.
func Columns(v any) ([]string, []any) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}

	var cols []string
	var args []any
	collectColumns(rv, &cols, &args)
	return cols, args
}

func collectColumns(rv reflect.Value, cols *[]string, args *[]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		value := rv.Field(i)
		if field.Anonymous && value.Kind() == reflect.Struct {
			collectColumns(value, cols, args)
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			continue
		}
		if value.Kind() == reflect.Pointer {
			if value.IsNil() {
				continue
			}
			*cols = append(*cols, name)
			*args = append(*args, value.Elem().Interface())
			continue
		}
		*cols = append(*cols, name)
		*args = append(*args, value.Interface())
	}
}

func insertSQL(table string, cols []string) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}

func updateSQL(table, key string, cols []string, touch bool) string {
	sets := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	if touch {
		sets = append(sets, "updated_at = now()")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(sets, ", "), key, len(cols)+1)
}
