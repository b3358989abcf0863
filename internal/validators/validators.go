package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Bounds for names (exclusive) and passwords (inclusive).
const (
	minNameLength     = 2
	maxNameLength     = 16
	minPasswordLength = 8
	maxPasswordLength = 16
)

// specialCharacters is the set a password must draw at least one character from.
const specialCharacters = "!@#$%^&*()-_=+[]{}|;:',.<>?/"

// RoleUser is the only role accepted through self-service signup.
const RoleUser = "user"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@jecrc\.ac\.in$`)

var validYears = map[string]struct{}{
	"1": {}, "2": {}, "3": {}, "4": {},
	"1st": {}, "2nd": {}, "3rd": {}, "4th": {},
}

// Branches maps each accepted branch code to its full name.
var Branches = map[string]string{
	"IT": "INFORMATION TECHNOLOGY",
	"CS": "COMPUTER SCIENCE",
	"ME": "MECHANICAL ENGINEERING",
	"EE": "ELECTRICAL ENGINEERING",
	"CE": "CIVIL ENGINEERING",
}

// IsNameValid reports whether name is longer than 2 and shorter than 16 characters.
func IsNameValid(name string) bool {
	n := utf8.RuneCountInString(name)
	return n > minNameLength && n < maxNameLength
}

// IsEmailValid reports whether email belongs to the institutional domain.
func IsEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

// IsPasswordValid checks length (8-16) and that the password mixes upper
// case, lower case and special characters.
func IsPasswordValid(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength {
		return false
	}

	var upper, lower, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case strings.ContainsRune(specialCharacters, r):
			special = true
		}
	}
	return upper && lower && special
}

// IsYearValid reports whether year is one of 1-4 or 1st-4th.
func IsYearValid(year string) bool {
	_, ok := validYears[year]
	return ok
}

// IsBranchValid reports whether branch is a known branch code, ignoring case.
func IsBranchValid(branch string) bool {
	_, ok := Branches[strings.ToUpper(branch)]
	return ok
}

// IsValidRole reports whether role is "user", ignoring case. Admin accounts
// are provisioned out of band and never pass this check.
func IsValidRole(role string) bool {
	return strings.ToLower(role) == RoleUser
}
