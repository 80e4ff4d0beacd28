package flyan

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate     *validator.Validate
	trans        ut.Translator
	validateOnce sync.Once
)

// initValidator sets up the shared validator instance with English
// translations. It runs once per process; searches from any number of
// clients share it read-only afterwards.
func initValidator() {
	validateOnce.Do(func() {
		validate = validator.New()

		uni := ut.New(en.New(), en.New())
		trans, _ = uni.GetTranslator("en")

		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	})
}

// checkVar validates a single value against a tag expression and wraps the
// first translated failure in the given sentinel.
func checkVar(value interface{}, tag string, sentinel error, field string) error {
	initValidator()

	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Errorf("%w: %s %s", sentinel, field, ve[0].Translate(trans))
	}

	return fmt.Errorf("%w: %s", sentinel, field)
}
