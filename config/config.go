// Package config loads configuration structs from the environment, and optionally from a
// file, using viper.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/convec/fn"
	"github.com/a-peyrard/convec/option"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
		file   string
	}

	// WithDefault is implemented by configuration structs filling their own zero values
	// once loaded.
	WithDefault interface {
		ApplyDefault()
	}
)

// WithEnvPrefix sets the prefix of every environment variable read.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithFile reads the given file (any format viper knows from its extension) before the
// environment, which still takes precedence.
func WithFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.file = path
	}
}

// Load builds a T from the environment. Field Foo.BarBaz of T is read from PREFIX_FOO_BAR_BAZ,
// nil struct pointers are allocated, and ApplyDefault is called on every value implementing
// WithDefault.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s: %w", options.file, err)
		}
	}

	var vT T
	bindEnvs(v, options.prefix, reflect.TypeOf(vT))

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	walkStruct(
		reflect.ValueOf(&vT),
		fn.AllTriConsumer[reflect.Value, reflect.Type, []string](
			createNilStructs,
			callApplyDefault,
		),
	)

	return &vT, nil
}

func bindEnvs(v *viper.Viper, envPrefix string, typ reflect.Type, parts ...string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}
		path := append(parts[:len(parts):len(parts)], name)

		fieldType := field.Type
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct {
			bindEnvs(v, envPrefix, fieldType, path...)
			continue
		}

		_ = v.BindEnv(strings.Join(path, "."), envKey(envPrefix, path...))
	}
}
