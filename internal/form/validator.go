package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "onboard/pkg/domain-errors"
)

// CountryChecker reports whether a country code is selectable.
type CountryChecker interface {
	Contains(code string) bool
}

var choiceMessages = map[string]string{
	FieldInvestmentGoals:   "Select a valid investment goal",
	FieldRiskTolerance:     "Select a valid risk tolerance",
	FieldPreferredIndustry: "Select a valid preferred industry",
}

// Validator applies the rule tables and checks select-field values against
// their option lists.
type Validator struct {
	validate  *validator.Validate
	countries CountryChecker
}

// NewValidator builds a Validator. countries may be nil, in which case any
// non-empty country code is accepted.
func NewValidator(countries CountryChecker) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("investment_goal", optionValidator(InvestmentGoals))
	_ = v.RegisterValidation("risk_tolerance", optionValidator(RiskToleranceOptions))
	_ = v.RegisterValidation("preferred_industry", optionValidator(PreferredIndustries))

	return &Validator{validate: v, countries: countries}
}

func optionValidator(options []Option) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return hasOption(options, fl.Field().String())
	}
}

// SignUp validates a sign-up form. It returns nil or a validation error
// carrying one message per failing field.
func (v *Validator) SignUp(f SignUp) error {
	errs := SignUpSchema.Validate(f.Values())

	if _, failed := errs[FieldCountry]; !failed && v.countries != nil && !v.countries.Contains(f.Country) {
		errs[FieldCountry] = "Please select a valid country"
	}

	if err := v.validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate sign-up form")
		}
		for _, fe := range verrs {
			if _, failed := errs[fe.Field()]; failed {
				continue
			}
			errs[fe.Field()] = choiceMessages[fe.Field()]
		}
	}

	return asError(errs)
}

// SignIn validates a sign-in form.
func (v *Validator) SignIn(f SignIn) error {
	return asError(SignInSchema.Validate(f.Values()))
}

func asError(errs FieldErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return dErrors.NewFieldErrors("form has invalid fields", errs)
}
