package admissions

import (
	"errors"
	"regexp"
	"strings"

	"admissions-workers/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	msgNameRequired          = "Name is required"
	msgDateOfBirthRequired   = "Date of birth is required"
	msgEmailRequired         = "Email is required"
	msgEmailInvalid          = "Email is invalid"
	msgContactRequired       = "Contact number is required"
	msgContactTenDigits      = "Contact number must be 10 digits"
	msgCourseRequired        = "Please select a course"
	msgMessageRequired       = "Message is required"
	requiredContactDigitsLen = 10
)

// unanchored: "x a@b.c y" passes
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// fieldRule validates one raw form value and returns the message for the first failing rule.
type fieldRule func(value string, courses []string) error

var applicationRules = map[string]fieldRule{
	models.FieldName:           validateName,
	models.FieldDateOfBirth:    validateDateOfBirth,
	models.FieldEmail:          validateEmail,
	models.FieldContactNumber:  validateContactNumber,
	models.FieldSelectedCourse: validateSelectedCourse,
}

func validateName(value string, _ []string) error {
	return validation.Validate(strings.TrimSpace(value),
		validation.Required.Error(msgNameRequired))
}

func validateDateOfBirth(value string, _ []string) error {
	return validation.Validate(value,
		validation.Required.Error(msgDateOfBirthRequired))
}

func validateEmail(value string, _ []string) error {
	return validation.Validate(strings.TrimSpace(value),
		validation.Required.Error(msgEmailRequired),
		validation.Match(emailPattern).Error(msgEmailInvalid))
}

func validateContactNumber(value string, _ []string) error {
	return validation.Validate(strings.TrimSpace(value),
		validation.Required.Error(msgContactRequired),
		validation.By(func(interface{}) error {
			if len(DigitsOnly(value)) != requiredContactDigitsLen {
				return errors.New(msgContactTenDigits)
			}
			return nil
		}))
}

func validateSelectedCourse(value string, courses []string) error {
	allowed := make([]interface{}, len(courses))
	for i, c := range courses {
		allowed[i] = c
	}
	return validation.Validate(value,
		validation.Required.Error(msgCourseRequired),
		validation.In(allowed...).Error(msgCourseRequired))
}

func validateMessage(value string, _ []string) error {
	return validation.Validate(strings.TrimSpace(value),
		validation.Required.Error(msgMessageRequired))
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collect runs the named rules and gathers every failure into FieldErrors.
func collect(values map[string]string, rules map[string]fieldRule, courses []string) FieldErrors {
	errs := validation.Errors{}
	for field, value := range values {
		rule, ok := rules[field]
		if !ok {
			continue
		}
		errs[field] = rule(value, courses)
	}

	filtered := errs.Filter()
	if filtered == nil {
		return nil
	}

	out := FieldErrors{}
	for field, err := range filtered.(validation.Errors) {
		out[field] = err.Error()
	}
	return out
}

// ValidateApplication checks every intake field and returns nil when the form is valid.
func ValidateApplication(form ApplicationForm, courses []string) FieldErrors {
	return collect(map[string]string{
		models.FieldName:           form.Name,
		models.FieldDateOfBirth:    form.DateOfBirth,
		models.FieldEmail:          form.Email,
		models.FieldContactNumber:  form.ContactNumber,
		models.FieldSelectedCourse: form.SelectedCourse,
	}, applicationRules, courses)
}

// ValidateContact checks the contact form.
func ValidateContact(form ContactForm) FieldErrors {
	return collect(map[string]string{
		models.FieldName:    form.Name,
		models.FieldEmail:   form.Email,
		models.FieldMessage: form.Message,
	}, map[string]fieldRule{
		models.FieldName:    validateName,
		models.FieldEmail:   validateEmail,
		models.FieldMessage: validateMessage,
	}, nil)
}

// validateChanges applies the intake rules to the subset of fields an admin edited.
func validateChanges(changes map[string]string, courses []string) FieldErrors {
	return collect(changes, applicationRules, courses)
}
