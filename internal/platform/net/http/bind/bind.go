// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerPresent(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ReadBody reads the whole request body, failing when it exceeds maxBytes or is empty
func ReadBody(r *http.Request, maxBytes int64) ([]byte, error) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("failed to close request body")
		}
	}()
	if maxBytes <= 0 {
		maxBytes = defaultJSONOptions().MaxBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "failed to read body")
	}
	if int64(len(raw)) > maxBytes {
		return nil, perr.JSONErrf("body exceeds %d bytes", maxBytes)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, perr.JSONErrf("empty body")
	}
	return raw, nil
}

// ObjectBytes reads the body and checks it holds exactly one JSON object.
// The returned bytes are the body as sent, for relaying verbatim
func ObjectBytes(r *http.Request, maxBytes int64) ([]byte, error) {
	raw, err := ReadBody(r, maxBytes)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, perr.JSONErrf("invalid JSON")
	}
	if bytes.TrimSpace(raw)[0] != '{' {
		return nil, perr.JSONErrf("expected a JSON object")
	}
	return raw, nil
}

// Decode unmarshals raw into T and validates it
func Decode[T any](raw []byte, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if o.DisallowUnknown {
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

// ParseJSON reads, decodes and validates the request body into T
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	raw, err := ReadBody(r, o.MaxBytes)
	if err != nil {
		return zero, err
	}
	return Decode[T](raw, o)
}

// Validate runs struct validation and maps failures to a Validation error carrying the field
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// registerPresent adds "present": a raw JSON value that is neither missing nor null
func registerPresent(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(json.RawMessage)
		if !ok {
			return !fl.Field().IsZero()
		}
		s := bytes.TrimSpace(raw)
		return len(s) > 0 && !bytes.Equal(s, []byte("null"))
	})
	_ = v.RegisterTranslation("present", trans,
		func(ut ut.Translator) error {
			return ut.Add("present", "{0} is required", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("present", fe.Field())
			return msg
		},
	)
}
