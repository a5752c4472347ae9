package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/redis/go-redis/v9"
)

// customRule is a validation tag of this package with its English message.
type customRule struct {
	tag     string
	fn      validator.Func
	message string
}

var customRules = []customRule{
	{tag: "file", fn: isReadableFile, message: "{0} must be an existing and readable file"},
	{tag: "redis_url", fn: isRedisURL, message: "{0} must be a redis:// or rediss:// URL"},
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations > %w", err)
	}

	// errors name the yaml keys, e.g. cache.redis_url
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, nil, fmt.Errorf("validate.RegisterValidation(%s) > %w", rule.tag, err)
		}
		if err := validate.RegisterTranslation(rule.tag, trans, registerMessage(rule.tag, rule.message), translateField); err != nil {
			return nil, nil, fmt.Errorf("validate.RegisterTranslation(%s) > %w", rule.tag, err)
		}
	}
	return validate, trans, nil
}

func registerMessage(tag string, message string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, message, true)
	}
}

// translateField fills {0} with the dotted yaml path of the field.
func translateField(trans ut.Translator, fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	message, err := trans.T(fe.Tag(), field)
	if err != nil {
		return fe.Error()
	}
	return message
}

func isReadableFile(fl validator.FieldLevel) bool {
	info, err := os.Stat(fl.Field().String())
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o400 != 0
}

func isRedisURL(fl validator.FieldLevel) bool {
	_, err := redis.ParseURL(fl.Field().String())
	return err == nil
}
