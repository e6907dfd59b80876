package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

type columnPlan struct {
	columns []string
	fields  []int
}

var columnPlans sync.Map // reflect.Type -> columnPlan

// ModelValues returns the db-tagged columns of model and their values in
// field order. Column layouts are computed once per struct type.
func ModelValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	plan := planFor(value.Type())
	if len(plan.columns) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	vals := make([]any, len(plan.fields))
	for i, idx := range plan.fields {
		vals[i] = value.Field(idx).Interface()
	}
	return append([]string(nil), plan.columns...), vals, nil
}

func planFor(typ reflect.Type) columnPlan {
	if cached, ok := columnPlans.Load(typ); ok {
		return cached.(columnPlan)
	}

	var plan columnPlan
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		plan.columns = append(plan.columns, col)
		plan.fields = append(plan.fields, i)
	}

	columnPlans.Store(typ, plan)
	return plan
}
