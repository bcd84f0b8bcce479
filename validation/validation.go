// Package validation checks submitted forms field by field and reports
// failures as a map from JSON field name to a human-readable message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// Errors maps a field (using its JSON name, with indexes for list
// elements such as "items[0].quantity") to the first rule it broke.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Form is anything that can be cleaned up before validation.
type Form interface {
	Normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// Check normalizes the form and validates it. It returns nil, an Errors
// value, or (for a form the validator cannot inspect) a plain error.
func Check(f Form) error {
	f.Normalize()
	return Struct(f)
}

// Struct validates s without normalizing it.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := Errors{}
	for _, fe := range verrs {
		key := fieldKey(fe)
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = message(fe)
	}
	return out
}

// fieldKey drops the root struct name from the namespace.
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// messages overrides the generic wording for specific field/rule pairs.
var messages = map[string]string{
	"email.required":        "Invalid email address.",
	"email.email":           "Invalid email address.",
	"password.required":     "Password is required.",
	"password.min":          "Password must be at least 6 characters.",
	"password.max":          "Password must be at most 72 characters.",
	"name.min":              "Name must be at least 2 characters.",
	"name.excludes":         "Name cannot contain a comma.",
	"fullName.required":     "Full name must be at least 2 characters.",
	"fullName.min":          "Full name must be at least 2 characters.",
	"feedbackText.required": "Feedback must be at least 10 characters.",
	"feedbackText.min":      "Feedback must be at least 10 characters.",
	"description.min":       "Description must be at least 5 characters.",
	"price.gt":              "Price must be positive.",
	"category.required":     "Category is required.",
	"category.min":          "Category is required.",
	"ingredients.required":  "Ingredients are required.",
	"ingredients.min":       "Ingredients are required.",
	"imageUrl.url":          "Please enter a valid image URL.",
	"customerName.required": "Customer name is required.",
	"customerName.min":      "Customer name is required.",
	"type.required":         "Order type is required.",
	"items.required":        "Order must have at least one item.",
	"items.min":             "Order must have at least one item.",
	"menuItemId.required":   "Please select an item.",
	"quantity.min":          "Quantity must be at least 1.",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "Invalid email address."
	case "url":
		return label + " must be a valid URL."
	case "excludes":
		return fmt.Sprintf("%s cannot contain %q.", label, fe.Param())
	}
	return label + " is invalid."
}

// humanize turns "phoneNumber" or "items[0]" into "Phone number" or "Items".
func humanize(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name trims and NFKC-normalizes display names, folding look-alike
// compatibility characters.
func Name(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}

// Email trims and NFC-normalizes an address. Case is preserved; addresses
// are matched exactly.
func Email(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Text trims free text.
func Text(s string) string {
	return strings.TrimSpace(s)
}

func textList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, Text(s))
	}
	return out
}
