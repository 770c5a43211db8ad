package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	cases := map[string]struct {
		password     string
		valid        bool
		errors       []string
		combinations int
	}{
		"empty": {
			password:     "",
			valid:        false,
			errors:       []string{msgPasswordTooShort, msgPasswordCombination},
			combinations: 0,
		},
		"short but mixed": {
			password:     "Ab1!",
			valid:        false,
			errors:       []string{msgPasswordTooShort},
			combinations: 4,
		},
		"long lower case only": {
			password:     "potatoes",
			valid:        false,
			errors:       []string{msgPasswordCombination},
			combinations: 1,
		},
		"lower case and digits": {
			password:     "potato123",
			valid:        true,
			errors:       []string{},
			combinations: 2,
		},
		"special characters count": {
			password:     "potato!!",
			valid:        true,
			errors:       []string{},
			combinations: 2,
		},
		"characters outside the special set do not count": {
			password:     "potato~~",
			valid:        false,
			errors:       []string{msgPasswordCombination},
			combinations: 1,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := ValidatePassword(tc.password)
			assert.Equal(t, tc.valid, got.IsValid)
			assert.Equal(t, tc.errors, got.Errors)
			assert.Equal(t, tc.combinations, got.Requirements.CombinationCount)
		})
	}
}

func TestValidatePasswordConfirm(t *testing.T) {
	assert.Equal(t, ConfirmValidation{IsValid: false}, ValidatePasswordConfirm("potato123", ""))
	assert.Equal(t, ConfirmValidation{IsValid: false, Error: msgPasswordMismatch}, ValidatePasswordConfirm("potato123", "potato124"))
	assert.Equal(t, ConfirmValidation{IsValid: true}, ValidatePasswordConfirm("potato123", "potato123"))
}

func TestGetPasswordStrength(t *testing.T) {
	cases := map[string]struct {
		password string
		strength int
		label    string
	}{
		"empty":          {"", 0, ""},
		"too short":      {"Ab1!", 1, "매우 약함"},
		"one kind":       {"potatoes", 2, "약함"},
		"two kinds":      {"potato12", 3, "보통"},
		"three kinds":    {"Potato12", 4, "강함"},
		"four kinds":     {"Potato1!", 5, "매우 강함"},
		"no ascii kinds": {"감자감자감자감자", 5, "매우 강함"},
		"only spaces":    {"        ", 5, "매우 강함"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := GetPasswordStrength(tc.password)
			assert.Equal(t, tc.strength, got.Strength)
			assert.Equal(t, tc.label, got.Label)
		})
	}
}
