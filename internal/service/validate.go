package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/sakif/applyhelp/internal/apperror"
	"github.com/sakif/applyhelp/internal/model"
)

// MaxCompareItems caps each id list of a comparison.
const MaxCompareItems = 10

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// enum is implemented by every typed enumeration in model.
type enum interface {
	Valid() bool
}

var validate = newValidator()

// newValidator builds the shared validator.
//
// Error field names come from json tags so they match what the client sent.
// The "enum" tag checks a typed enumeration through its Valid method and
// "username" allows letters, digits and @.+-_ only.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return ok && e.Valid()
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	// Resume sections are validated as model structs; the rules live here
	// rather than as tags on the model.
	v.RegisterStructValidationMapRules(map[string]string{
		"DegreeLevel":     "required,enum",
		"DegreeTitle":     "required,max=200",
		"FieldOfStudy":    "required,max=200",
		"InstitutionName": "required,max=200",
		"StartDate":       "required",
		"GPA":             "max=10",
	}, model.Education{})
	v.RegisterStructValidationMapRules(map[string]string{
		"ExperienceType": "required,enum",
		"JobTitle":       "required,max=200",
		"CompanyName":    "required,max=200",
		"StartDate":      "required",
		"Description":    "required",
	}, model.Experience{})
	v.RegisterStructValidationMapRules(map[string]string{
		"Category":          "required,enum",
		"Name":              "required,max=100",
		"Proficiency":       "required,enum",
		"YearsOfExperience": "omitempty,gte=0,lte=80",
	}, model.Skill{})
	v.RegisterStructValidationMapRules(map[string]string{
		"PublicationType": "required,enum",
		"Title":           "required,max=300",
		"Authors":         "required",
		"URL":             "omitempty,url",
	}, model.Publication{})
	v.RegisterStructValidationMapRules(map[string]string{
		"AwardType":           "required,enum",
		"Title":               "required,max=200",
		"IssuingOrganization": "required,max=200",
		"DateReceived":        "required",
	}, model.Award{})
	return v
}

// fieldErrors runs the validator and returns every failing field with a
// message. A nil map means the value is valid.
func fieldErrors(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return fields
}

// check validates v and reports failures as a single apperror.Invalid.
func check(v any) error {
	if fields := fieldErrors(v); len(fields) > 0 {
		return apperror.Invalid(fields)
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "url":
		return "enter a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "enum":
		return "select a valid choice"
	case "username":
		return "may contain only letters, numbers and @/./+/-/_"
	default:
		return "invalid value"
	}
}

// checkDecimal adds a message to fields when d is set and falls outside
// [minimum, maximum]. It returns fields, allocating it when needed.
func checkDecimal(fields map[string]string, name string, d decimal.NullDecimal, minimum, maximum decimal.Decimal) map[string]string {
	if !d.Valid || (d.Decimal.GreaterThanOrEqual(minimum) && d.Decimal.LessThanOrEqual(maximum)) {
		return fields
	}
	if fields == nil {
		fields = map[string]string{}
	}
	fields[name] = fmt.Sprintf("must be between %s and %s", minimum, maximum)
	return fields
}
