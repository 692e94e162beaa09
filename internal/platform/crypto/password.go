package crypto

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var (
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrPasswordNoLower       = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoUpper       = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoNumber      = errors.New("password must contain at least one number")
	ErrPasswordNoSpecialChar = errors.New("password must contain at least one special character")
)

type passwordRule struct {
	check func(string) bool
	err   error
}

// passwordRules are independent; a password must satisfy every one of them.
var passwordRules = []passwordRule{
	{check: func(p string) bool { return utf8.RuneCountInString(p) >= MinPasswordLength }, err: ErrPasswordTooShort},
	{check: containsRune(unicode.IsLower), err: ErrPasswordNoLower},
	{check: containsRune(unicode.IsUpper), err: ErrPasswordNoUpper},
	{check: containsRune(unicode.IsDigit), err: ErrPasswordNoNumber},
	{check: containsRune(isSpecial), err: ErrPasswordNoSpecialChar},
}

func containsRune(pred func(rune) bool) func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if pred(r) {
				return true
			}
		}
		return false
	}
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// ValidatePasswordStrength returns the error of the first rule the password breaks.
func ValidatePasswordStrength(password string) error {
	for _, rule := range passwordRules {
		if !rule.check(password) {
			return rule.err
		}
	}
	return nil
}

// IsPasswordAllowed reports whether password satisfies the whole policy.
func IsPasswordAllowed(password string) bool {
	return ValidatePasswordStrength(password) == nil
}
