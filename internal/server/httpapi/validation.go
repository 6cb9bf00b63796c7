package httpapi

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/sensorhub/internal/common"
	"github.com/dmitrijs2005/sensorhub/internal/server/services"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// messages maps "<json field>.<failed tag>" to the text reported to clients.
var messages = map[string]string{
	"username.notblank": "username is required",
	"username.min":      "username must be between 3 and 100 characters",
	"username.max":      "username must be between 3 and 100 characters",
	"password.notblank": "password is required",
	"password.min":      services.PasswordLengthMessage,
	"password.max":      services.PasswordLengthMessage,
	"sensorId.notblank": "sensorId must not be blank",
}

// structValidator plugs a validator configured for json field names and the
// notblank tag into gin's binding.
type structValidator struct {
	once     sync.Once
	validate *validator.Validate
}

func (v *structValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.validate.Struct(obj)
}

func (v *structValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *structValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())
		v.validate.SetTagName("binding")
		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.validate.RegisterValidation("notblank", validators.NotBlank)
	})
}

var installValidatorOnce sync.Once

func installValidator() {
	installValidatorOnce.Do(func() {
		binding.Validator = &structValidator{}
	})
}

// fieldErrors turns a binding error for obj into ordered field messages. The
// validator stops at the first failing tag of a field, so the tags after it
// are checked here too and their distinct messages appended. ok is false when
// err is not a validation failure (for example malformed JSON).
func fieldErrors(err error, obj any) (common.ValidationErrors, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	engine, _ := binding.Validator.Engine().(*validator.Validate)

	out := make(common.ValidationErrors, 0, len(ve))
	for _, fe := range ve {
		out = appendUnique(out, fe.Field(), message(fe.Field(), fe.Tag()))
		if engine == nil {
			continue
		}
		for _, tag := range tagsAfter(obj, fe) {
			var more validator.ValidationErrors
			if errors.As(engine.Var(fe.Value(), tag), &more) {
				for _, m := range more {
					out = appendUnique(out, fe.Field(), message(fe.Field(), m.Tag()))
				}
			}
		}
	}
	return out, true
}

// tagsAfter returns the binding tags declared on fe's field after the one
// that failed.
func tagsAfter(obj any, fe validator.FieldError) []string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	sf, ok := t.FieldByName(fe.StructField())
	if !ok {
		return nil
	}

	tags := strings.Split(sf.Tag.Get("binding"), ",")
	for i, tag := range tags {
		if name, _, _ := strings.Cut(tag, "="); name == fe.Tag() {
			return tags[i+1:]
		}
	}
	return nil
}

func appendUnique(out common.ValidationErrors, field, msg string) common.ValidationErrors {
	for _, e := range out {
		if e.Field == field && e.Message == msg {
			return out
		}
	}
	return append(out, common.FieldError{Field: field, Message: msg})
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	return field + " is invalid"
}
