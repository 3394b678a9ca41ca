package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate, trans, nil
}

// Validate checks field constraints and that the timer's default category,
// when set, is one of the configured categories.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	var msgs []string
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating configuration: %w", err)
		}
		for _, fe := range verrs {
			msg := fe.Translate(trans)
			// Translations lead with the bare field name; show the full path.
			path := strings.TrimPrefix(fe.Namespace(), "Config.")
			msg = strings.Replace(msg, fe.Field(), path, 1)
			msgs = append(msgs, msg)
		}
	}

	if name := c.Timer.DefaultCategory; name != "" {
		if _, err := c.Catalog().Lookup(name); err != nil {
			msgs = append(msgs, fmt.Sprintf("timer.default_category %q is not a configured category", name))
		}
	}

	if len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}
