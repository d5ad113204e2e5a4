package config

import (
	"reflect"

	"github.com/a-peyrard/convec/fn"
)

var withDefaultType = reflect.TypeOf((*WithDefault)(nil)).Elem()

// walkStruct applies consumer on val then on every exported field, recursively.
func walkStruct(val reflect.Value, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	walk(val, nil, consumer)
}

func walk(val reflect.Value, path []string, consumer fn.TriConsumer[reflect.Value, reflect.Type, []string]) {
	consumer(val, val.Type(), path)

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		val = val.Elem()
	}
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		walk(val.Field(i), append(path[:len(path):len(path)], field.Name), consumer)
	}
}

func createNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer &&
		val.IsNil() &&
		typ.Elem().Kind() == reflect.Struct &&
		val.CanSet() {

		val.Set(reflect.New(typ.Elem()))
	}
}

func callApplyDefault(val reflect.Value, typ reflect.Type, _ []string) {
	switch {
	case typ.Kind() == reflect.Pointer && typ.Implements(withDefaultType):
		if !val.IsNil() {
			val.Interface().(WithDefault).ApplyDefault()
		}
	case typ.Kind() == reflect.Struct && val.CanAddr() && reflect.PointerTo(typ).Implements(withDefaultType):
		val.Addr().Interface().(WithDefault).ApplyDefault()
	}
}
