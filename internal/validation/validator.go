package validation

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/apperrors"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/models"
)

// Validator checks request inputs against their validate tags and turns
// failures into *apperrors.ValidationError with English messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report json names so messages match the request body
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	custom := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{"program", oneOf(models.Programs), "{0} must be one of [" + strings.Join(models.Programs, ", ") + "]"},
		{"cohortformat", oneOf(models.CohortFormats), "{0} must be one of [" + strings.Join(models.CohortFormats, ", ") + "]"},
		{"mongodb", nil, "{0} must be a valid identifier"},
	}
	for _, c := range custom {
		if c.fn != nil {
			if err := validate.RegisterValidation(c.tag, c.fn); err != nil {
				return nil, err
			}
		}
		if err := validate.RegisterTranslation(c.tag, trans, registerMessage(c.tag, c.message), translate(c.tag)); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s and names entity in the resulting error.
func (v *Validator) Struct(entity string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &apperrors.ValidationError{Entity: entity}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.trans),
		})
	}
	return out
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

func registerMessage(tag, message string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, message, true)
	}
}

func translate(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}
