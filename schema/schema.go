// Package schema validates payloads at the trust boundary: outbound bodies
// before they leave the process and inbound payloads before they reach
// application code.
//
// Validation rules are declared with validate struct tags and reported under
// the json field names, so error paths match what actually crossed the wire.
package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/GriffinCanCode/apiclient/errs"
	"github.com/bytedance/sonic"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("schema: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Validate checks v against its declared validate tags. Structs are checked
// directly and slices element by element, with the element index prefixed to
// each error path. Values with no declared shape (maps, scalars, nil, nil or
// non-struct elements) pass.
func Validate(v any) error {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		fields, err := structFields(rv.Interface(), "")
		if err != nil {
			return err
		}
		if len(fields) > 0 {
			return fields
		}
		return nil

	case reflect.Slice, reflect.Array:
		var all errs.FieldErrors
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Pointer && !elem.IsNil() {
				elem = elem.Elem()
			}
			// Nil and non-struct elements carry no declared shape. They are
			// skipped, never a reason to drop issues found in their siblings.
			if elem.Kind() != reflect.Struct {
				continue
			}

			fields, err := structFields(elem.Interface(), fmt.Sprintf("[%d].", i))
			if err != nil {
				return err
			}
			all = append(all, fields...)
		}
		if len(all) > 0 {
			return all
		}
		return nil

	default:
		return nil
	}
}

// Bind decodes v into T and validates the result. Raw bytes are parsed
// directly; anything else is round-tripped through JSON, so map payloads off
// the wire land in typed structs. A payload that does not fit T's shape
// fails with field errors, never with a bare decode error.
func Bind[T any](v any) (T, error) {
	var out T

	raw, ok := v.([]byte)
	if !ok {
		var err error
		if raw, err = sonic.Marshal(v); err != nil {
			return out, errs.NewFieldsError("body", err)
		}
	}

	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, errs.NewFieldsError("body", err)
	}

	if err := Validate(out); err != nil {
		return out, err
	}
	return out, nil
}

func structFields(v any, prefix string) (errs.FieldErrors, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	verrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}

	fields := make(errs.FieldErrors, 0, len(verrors))
	for _, verror := range verrors {
		fields = append(fields, errs.FieldError{
			Field: prefix + fieldPath(verror),
			Err:   messageForTag(verror),
		})
	}
	return fields, nil
}

// fieldPath strips the root struct name from the namespace, leaving the
// json-tagged path into the payload.
func fieldPath(verror validator.FieldError) string {
	ns := verror.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return verror.Field()
}

func messageForTag(verror validator.FieldError) string {
	switch verror.Tag() {
	case "required":
		return "This field is required"
	default:
		return verror.Translate(translator)
	}
}
