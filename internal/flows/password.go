package flows

import (
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength       = 8
	MinPasswordCombinations = 2

	passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

	msgPasswordTooShort    = "8자 이상 입력해주세요"
	msgPasswordCombination = "대문자, 소문자, 숫자, 특수문자 중 최소 2가지를 포함해주세요"
	msgPasswordMismatch    = "비밀번호가 일치하지 않습니다"
)

type PasswordRequirements struct {
	Length           bool `json:"length"`
	HasUpperCase     bool `json:"has_upper_case"`
	HasLowerCase     bool `json:"has_lower_case"`
	HasNumber        bool `json:"has_number"`
	HasSpecialChar   bool `json:"has_special_char"`
	CombinationCount int  `json:"combination_count"`
}

type PasswordValidation struct {
	IsValid      bool                 `json:"is_valid"`
	Errors       []string             `json:"errors"`
	Requirements PasswordRequirements `json:"requirements"`
}

type ConfirmValidation struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
}

type PasswordStrength struct {
	Strength int    `json:"strength"`
	Label    string `json:"label"`
	Color    string `json:"color"`
}

// ValidatePassword accepts passwords of at least 8 characters mixing at least
// two of: upper case, lower case, digits, special characters.
func ValidatePassword(password string) PasswordValidation {
	req := PasswordRequirements{
		Length: utf8.RuneCountInString(password) >= MinPasswordLength,
	}

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			req.HasUpperCase = true
		case r >= 'a' && r <= 'z':
			req.HasLowerCase = true
		case r >= '0' && r <= '9':
			req.HasNumber = true
		case strings.ContainsRune(passwordSpecialChars, r):
			req.HasSpecialChar = true
		}
	}

	for _, ok := range []bool{req.HasUpperCase, req.HasLowerCase, req.HasNumber, req.HasSpecialChar} {
		if ok {
			req.CombinationCount++
		}
	}

	errs := make([]string, 0, 2)
	if !req.Length {
		errs = append(errs, msgPasswordTooShort)
	}
	if req.CombinationCount < MinPasswordCombinations {
		errs = append(errs, msgPasswordCombination)
	}

	return PasswordValidation{
		IsValid:      req.Length && req.CombinationCount >= MinPasswordCombinations,
		Errors:       errs,
		Requirements: req,
	}
}

// ValidatePasswordConfirm reports an empty confirmation as invalid without a message.
func ValidatePasswordConfirm(password, confirm string) ConfirmValidation {
	if confirm == "" {
		return ConfirmValidation{IsValid: false}
	}
	if password != confirm {
		return ConfirmValidation{IsValid: false, Error: msgPasswordMismatch}
	}
	return ConfirmValidation{IsValid: true}
}

func GetPasswordStrength(password string) PasswordStrength {
	if password == "" {
		return PasswordStrength{Strength: 0, Label: "", Color: "gray"}
	}

	v := ValidatePassword(password)
	if !v.Requirements.Length {
		return PasswordStrength{Strength: 1, Label: "매우 약함", Color: "red"}
	}

	// anything that is not 1, 2 or 3 kinds, including none, rates as very strong
	switch v.Requirements.CombinationCount {
	case 1:
		return PasswordStrength{Strength: 2, Label: "약함", Color: "orange"}
	case 2:
		return PasswordStrength{Strength: 3, Label: "보통", Color: "yellow"}
	case 3:
		return PasswordStrength{Strength: 4, Label: "강함", Color: "green"}
	default:
		return PasswordStrength{Strength: 5, Label: "매우 강함", Color: "blue"}
	}
}
