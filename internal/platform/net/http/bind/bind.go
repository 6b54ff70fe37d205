// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a body when Options.MaxBytes is zero
const DefaultMaxBytes = 1 << 20

// Options controls decoding
type Options struct {
	MaxBytes int64
	// Strict rejects fields the target type does not declare
	Strict bool
}

type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	chk  *checker

	// handleRe matches a Telegram username with an optional marker
	handleRe = regexp.MustCompile(`^@?[A-Za-z0-9_]+$`)
)

func get() *checker {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")

		_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
			return handleRe.MatchString(fl.Field().String())
		})
		translate(v, trans, "handle", "{0} must be a Telegram username")

		chk = &checker{v: v, trans: trans}
	})
	return chk
}

// jsonName reports fields by their wire name
func jsonName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON reads r's body into T and validates it
// bad bodies are ErrorCodeJSON, failed rules are ErrorCodeValidation
func ParseJSON[T any](r *http.Request, o Options) (T, error) {
	var zero T
	limit := o.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body failed")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return zero, perr.JSONErrf("read body: %v", err)
	}
	if int64(len(raw)) > limit {
		return zero, perr.JSONErrf("body exceeds %d bytes", limit)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if o.Strict {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct rules on v and returns the first failure
func Validate(v any) error {
	err := get().v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return perr.Newf(perr.ErrorCodeValidation, "%s", verrs[0].Translate(get().trans))
	}
	return perr.Newf(perr.ErrorCodeValidation, "%s", err.Error())
}
