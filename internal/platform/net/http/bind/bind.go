// Package bind decodes and validates the request bodies of the view endpoints.
// The CLI validates its flag built inputs through the same rules
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "oilwatch/internal/platform/errors"
)

const maxBody = 1 << 20

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

// enum tags accept the empty string so an omitted field takes its default
var enums = []struct {
	tag     string
	msg     string
	allowed []string
}{
	{"granularity", "{0} must be year or month", []string{"", "year", "month"}},
	{"measure", "{0} must be count or proportion", []string{"", "count", "proportion"}},
}

// shorter than the stock english bounds messages, which talk about characters
var bounds = map[string]string{
	"min": "{0} must be at least {1}",
	"max": "{0} must be at most {1}",
}

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(validate, trans)

		for tag, msg := range bounds {
			translate(tag, msg)
		}
		for _, e := range enums {
			allowed := e.allowed
			_ = validate.RegisterValidation(e.tag, func(fl validator.FieldLevel) bool {
				return slices.Contains(allowed, strings.ToLower(strings.TrimSpace(fl.Field().String())))
			})
			translate(e.tag, e.msg)
		}
	})
}

func translate(tag, msg string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, msg, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// ParseJSON decodes one JSON object into T and validates it. Unknown fields
// and trailing data are rejected; an empty body binds the zero value, so a
// bare POST asks for the defaults
func ParseJSON[T any](r *http.Request) (T, error) {
	var v, zero T
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(v); err != nil {
		return zero, err
	}
	return v, nil
}

// Validate runs the struct rules on v and reports the first failure as a
// Validation error carrying the json field name
func Validate(v any) error {
	setup()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return perr.Wrapf(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := verrs[0]
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(trans)), fe.Field())
}
