package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The validation gate runs locally and synchronously: failures block step
// transition and are never sent over the network. ValidateDraft reports only
// the earliest violated rule, in a fixed field order, so the message shown to
// the user is deterministic.

// FieldError is a validation failure attributed to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	// Letters with intra-word spaces and hyphens, at least two letters up
	// front. No leading or trailing separators.
	nameRe = regexp.MustCompile(`^[A-Za-z]{2}[A-Za-z]*(?:[ -][A-Za-z]+)*$`)

	// Eleven digits, first one non-zero.
	nationalIDRe = regexp.MustCompile(`^[1-9][0-9]{10}$`)

	// RFC 5322 subset, the usual HTML-validation pattern.
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

	// Dialable number with country code, spaces allowed between groups.
	phoneRe = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

func validateName(field, value string) *FieldError {
	if !nameRe.MatchString(strings.TrimSpace(value)) {
		return &FieldError{Field: field, Message: fmt.Sprintf("please enter a valid %s", field)}
	}
	return nil
}

func validateBirthDate(birthDate *time.Time, now time.Time) *FieldError {
	if birthDate == nil || birthDate.IsZero() {
		return &FieldError{Field: "birth_date", Message: "please enter your birthday"}
	}
	if birthDate.After(now) {
		return &FieldError{Field: "birth_date", Message: "birth date cannot be in the future"}
	}
	return nil
}

func validateNationalID(value string) *FieldError {
	if !nationalIDRe.MatchString(value) {
		return &FieldError{Field: "national_id", Message: "please enter a valid id"}
	}
	return nil
}

func validateEmail(value string) *FieldError {
	if !emailRe.MatchString(value) {
		return &FieldError{Field: "email", Message: "please enter a valid email"}
	}
	return nil
}

func validatePhone(value string) *FieldError {
	if !phoneRe.MatchString(stripWhitespace(value)) {
		return &FieldError{Field: "phone", Message: "please enter a phone number"}
	}
	return nil
}

// ValidateDetails gates one passenger form submission. Field order is part
// of the contract: name, surname, birth date, national id, email, phone.
func ValidateDetails(details PassengerDetails, now time.Time) *FieldError {
	if err := validateName("name", details.Name); err != nil {
		return err
	}
	if err := validateName("surname", details.Surname); err != nil {
		return err
	}
	if err := validateBirthDate(details.BirthDate, now); err != nil {
		return err
	}
	if err := validateNationalID(details.NationalID); err != nil {
		return err
	}
	if err := validateEmail(details.Email); err != nil {
		return err
	}
	if err := validatePhone(details.Phone); err != nil {
		return err
	}
	return nil
}

// ValidateDraft re-checks the passenger fields already merged into a draft,
// in the same order as ValidateDetails.
func ValidateDraft(draft Draft, now time.Time) *FieldError {
	return ValidateDetails(PassengerDetails{
		Name:       draft.Name,
		Surname:    draft.Surname,
		Email:      draft.Email,
		Phone:      draft.Phone,
		Gender:     draft.Gender,
		NationalID: draft.NationalID,
		BirthDate:  draft.BirthDate,
		Disabled:   draft.Disabled,
	}, now)
}

func stripWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(s, "")
}
