package validation

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/pkg/errors"
)

var (
	once       sync.Once
	translator ut.Translator

	requiredText = "{0} is required"
)

// Init configures gin's validator engine: json/form tag field names and english messages.
// Safe to call more than once.
func Init() {
	once.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("validation: gin validator engine is not go-playground/validator")
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		registerTranslation(validate, "required", requiredText)
	})
}

func registerTranslation(validate *validator.Validate, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fieldKey(fe))
			return s
		},
	)
}

// Struct runs the binding tags of v outside a gin Bind call.
func Struct(v interface{}) error {
	Init()
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return Error(err)
	}
	return nil
}

// Error converts a bind or validation failure into a validation *apperror.Error.
func Error(err error) *apperror.Error {
	Init()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldKey(fe)] = fe.Translate(translator)
		}
		return apperror.Validation(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperror.Field(typeErr.Field, "has an invalid type")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperror.Field("body", "is not valid JSON")
	}
	if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindValidation {
		return appErr
	}
	return apperror.Field("body", err.Error())
}

// fieldKey turns "QuizRequest.questions[0].title" into "questions[0].title".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
