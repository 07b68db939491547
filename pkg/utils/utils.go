package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// IsEmpty checks if a string is empty.
func IsEmpty(s string) bool {
	return s == ""
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if !IsEmpty(v) {
			return v
		}
	}
	return ""
}

// ParseStructEnv binds env vars to struct fields using a mapstructure tag
func ParseStructEnv(cfg interface{}) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if err := viper.BindEnv(tag); err != nil {
			return err
		}
	}
	return viper.Unmarshal(cfg)
}

// FormatConfigErrors turns validator errors on a config struct into one error
// naming the offending keys by their mapstructure tag.
func FormatConfigErrors(logger *zap.Logger, err error, cfg interface{}) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := reflect.TypeOf(cfg)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	keys := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("mapstructure"); tag != "" {
				key = tag
			}
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		logger.Error("invalid_config_value", zap.String("key", key), zap.String("rule", rule))
		keys = append(keys, fmt.Sprintf("%s (%s)", key, rule))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(keys, ", "))
}
