package service

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal.Decimal fields and the
// custom "category" and "image" tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		_, err := model.ParseCategory(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "image", func(fl validator.FieldLevel) bool {
		return isImageRef(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
	}
}

// isImageRef accepts http(s) URLs, absolute paths and base64 image data URIs.
func isImageRef(s string) bool {
	if strings.HasPrefix(s, "/") {
		return true
	}
	if strings.HasPrefix(s, "data:") {
		_, _, err := splitDataURI(s)
		return err == nil
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// splitDataURI returns the media type and base64 payload of a data:image/...;base64,... URI.
func splitDataURI(s string) (string, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return "", "", fmt.Errorf("data URI without payload")
	}
	mediaType, encoding, _ := strings.Cut(meta, ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return "", "", fmt.Errorf("unsupported media type %q", mediaType)
	}
	if !strings.HasSuffix(encoding, "base64") {
		return "", "", fmt.Errorf("data URI must be base64 encoded")
	}
	return mediaType, payload, nil
}

// checkImageSize rejects data URIs whose decoded payload exceeds model.MaxBackgroundImageBytes.
// Other references are not inspected.
func checkImageSize(ref string) error {
	if !strings.HasPrefix(ref, "data:") {
		return nil
	}
	_, payload, err := splitDataURI(ref)
	if err != nil {
		return err
	}
	if base64.StdEncoding.DecodedLen(len(payload)) <= model.MaxBackgroundImageBytes {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("invalid base64 image payload: %w", err)
	}
	if len(decoded) > model.MaxBackgroundImageBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", adminerrors.ErrImageTooLarge, len(decoded), model.MaxBackgroundImageBytes)
	}
	return nil
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", adminerrors.ErrValidation, err)
}
