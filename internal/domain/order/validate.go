package order

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
)

// caMobile matches Canadian mobile numbers the way validator.js en-CA does:
// optional +1 or 1 prefix, area code and exchange starting with 2-9.
var caMobile = regexp.MustCompile(`^((\+1|1)?( |-)?)?(\([2-9][0-9]{2}\)|[2-9][0-9]{2})( |-)?([2-9][0-9]{2}( |-)?[0-9]{4})$`)

// Form is the order form exactly as submitted. Quantities stay strings until
// they pass validation so the form can be re-rendered verbatim.
type Form struct {
	Name        string `form:"name" validate:"required"`
	Phone       string `form:"phone" validate:"ca_mobile"`
	MangoJuices string `form:"mangoJuices" validate:"number"`
	BerryJuices string `form:"berryJuices" validate:"number"`
	AppleJuices string `form:"appleJuices" validate:"number"`
}

var fieldMessages = map[string]string{
	"name":        "Name is required",
	"phone":       "Phone must be a valid Canadian number",
	"mangoJuices": "Mango juice quantity must be a number",
	"berryJuices": "Berry juice quantity must be a number",
	"appleJuices": "Apple juice quantity must be a number",
}

// FieldError is a single failing form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failing field of a submitted form, in form
// field order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the user-facing messages of the failing fields.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Message
	}
	return out
}

// Validator checks order forms against the declarative rules on Form.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the ca_mobile rule registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := v.RegisterValidation("ca_mobile", func(fl validator.FieldLevel) bool {
		return caMobile.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Validate checks f and returns the parsed quantities. Any failure is
// reported as a *ValidationError.
func (v *Validator) Validate(f Form) (Quantities, error) {
	var fields []FieldError
	if err := v.v.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Quantities{}, errors.Wrap(err, "validate form")
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessages[fe.Field()]})
		}
	}
	if len(fields) > 0 {
		return Quantities{}, &ValidationError{Fields: fields}
	}

	// Digits only at this point, but a value may still overflow int.
	var q Quantities
	for _, p := range []struct {
		field string
		raw   string
		dst   *int
	}{
		{"mangoJuices", f.MangoJuices, &q.Mango},
		{"berryJuices", f.BerryJuices, &q.Berry},
		{"appleJuices", f.AppleJuices, &q.Apple},
	} {
		n, err := strconv.Atoi(p.raw)
		if err != nil {
			fields = append(fields, FieldError{Field: p.field, Message: fieldMessages[p.field]})
			continue
		}
		*p.dst = n
	}
	if len(fields) > 0 {
		return Quantities{}, &ValidationError{Fields: fields}
	}
	return q, nil
}
