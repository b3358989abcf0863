package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Struct tags understood by the validator returned from New.
const (
	TagName     = "libname"
	TagEmail    = "libemail"
	TagPassword = "libpassword"
	TagYear     = "libyear"
	TagBranch   = "libbranch"
	TagRole     = "librole"
)

var tagFuncs = map[string]func(string) bool{
	TagName:     IsNameValid,
	TagEmail:    IsEmailValid,
	TagPassword: IsPasswordValid,
	TagYear:     IsYearValid,
	TagBranch:   IsBranchValid,
	TagRole:     IsValidRole,
}

// New returns a validator with the library field tags registered. Field
// names in errors are taken from json tags when present.
func New() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range tagFuncs {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return nil, err
		}
	}
	return v, nil
}
