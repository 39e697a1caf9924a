package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails(t *testing.T) PassengerDetails {
	t.Helper()
	birthDate := time.Date(1988, time.March, 14, 0, 0, 0, 0, time.UTC)
	return PassengerDetails{
		Name:       "Ada",
		Surname:    "Lovelace",
		Email:      "ada@example.com",
		Phone:      "+90 532 111 22 33",
		Gender:     "female",
		NationalID: "12345678901",
		BirthDate:  &birthDate,
	}
}

func TestValidateDetailsAcceptsValidForm(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	assert.Nil(t, ValidateDetails(validDetails(t), now))
}

func TestValidateDetailsReportsFirstFailureOnly(t *testing.T) {
	now := time.Now().UTC()

	// Every field invalid: only the name failure surfaces.
	err := ValidateDetails(PassengerDetails{
		Name:       "A",
		Surname:    "",
		Email:      "not-an-email",
		Phone:      "12345",
		NationalID: "007",
	}, now)
	require.NotNil(t, err)
	assert.Equal(t, "name", err.Field)

	// Fix the name: the surname failure surfaces next.
	err = ValidateDetails(PassengerDetails{
		Name:       "Ada",
		Surname:    "",
		Email:      "not-an-email",
		Phone:      "12345",
		NationalID: "007",
	}, now)
	require.NotNil(t, err)
	assert.Equal(t, "surname", err.Field)
}

func TestValidateDetailsFieldOrder(t *testing.T) {
	now := time.Now().UTC()
	order := []string{"name", "surname", "birth_date", "national_id", "email", "phone"}

	details := PassengerDetails{}
	for _, expected := range order {
		err := ValidateDetails(details, now)
		require.NotNil(t, err, "expected a failure for %s", expected)
		assert.Equal(t, expected, err.Field)

		// Repair the field just reported and re-validate.
		switch expected {
		case "name":
			details.Name = "Ada"
		case "surname":
			details.Surname = "Lovelace"
		case "birth_date":
			birthDate := time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC)
			details.BirthDate = &birthDate
		case "national_id":
			details.NationalID = "12345678901"
		case "email":
			details.Email = "ada@example.com"
		case "phone":
			details.Phone = "+905321112233"
		}
	}

	assert.Nil(t, ValidateDetails(details, now))
}

func TestValidateDetailsNameRule(t *testing.T) {
	now := time.Now().UTC()

	valid := []string{"Ada", "Jean-Luc", "Mary Jane", "de Souza"}
	for _, name := range valid {
		details := validDetails(t)
		details.Name = name
		assert.Nil(t, ValidateDetails(details, now), "name %q should pass", name)
	}

	invalid := []string{"", "A", "A1", "Ada!", " Ada-", "Ada--Lovelace"}
	for _, name := range invalid {
		details := validDetails(t)
		details.Name = name
		err := ValidateDetails(details, now)
		require.NotNil(t, err, "name %q should fail", name)
		assert.Equal(t, "name", err.Field)
	}
}

func TestValidateDetailsBirthDateRule(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	details := validDetails(t)
	details.BirthDate = nil
	err := ValidateDetails(details, now)
	require.NotNil(t, err)
	assert.Equal(t, "birth_date", err.Field)

	future := now.AddDate(0, 0, 1)
	details.BirthDate = &future
	err = ValidateDetails(details, now)
	require.NotNil(t, err)
	assert.Equal(t, "birth_date", err.Field)
	assert.Contains(t, err.Message, "future")
}

func TestValidateDetailsNationalIDRule(t *testing.T) {
	now := time.Now().UTC()

	invalid := []string{"", "0123456789", "01234567890", "1234567890", "123456789012", "1234567890a"}
	for _, id := range invalid {
		details := validDetails(t)
		details.NationalID = id
		err := ValidateDetails(details, now)
		require.NotNil(t, err, "national id %q should fail", id)
		assert.Equal(t, "national_id", err.Field)
	}

	details := validDetails(t)
	details.NationalID = "98765432109"
	assert.Nil(t, ValidateDetails(details, now))
}

func TestValidateDetailsEmailRule(t *testing.T) {
	now := time.Now().UTC()

	invalid := []string{"", "plain", "missing@tld", "@nouser.com", "two@@at.com"}
	for _, email := range invalid {
		details := validDetails(t)
		details.Email = email
		err := ValidateDetails(details, now)
		require.NotNil(t, err, "email %q should fail", email)
		assert.Equal(t, "email", err.Field)
	}
}

func TestValidateDetailsPhoneRuleIgnoresWhitespace(t *testing.T) {
	now := time.Now().UTC()

	details := validDetails(t)
	details.Phone = "+90 532 111 22 33"
	assert.Nil(t, ValidateDetails(details, now))

	invalid := []string{"", "5321112233", "+0 532 111", "+90-532-111-22-33", "+123"}
	for _, phone := range invalid {
		details := validDetails(t)
		details.Phone = phone
		err := ValidateDetails(details, now)
		require.NotNil(t, err, "phone %q should fail", phone)
		assert.Equal(t, "phone", err.Field)
	}
}
