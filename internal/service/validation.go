package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// Field names shared by the forms and their templates.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldMessage  = "message"
	FieldRating   = "rating"
)

const (
	maxCredentialLength = 255
	minPasswordLength   = 8
	maxFeedbackName     = 50
	maxFeedbackMessage  = 255
)

// ValidateLogin checks the login form. The returned map is empty when the form is valid.
func ValidateLogin(email, password string) map[string]string {
	errs := map[string]string{}
	if !ValidEmail(email) {
		errs[FieldEmail] = "validation.email.invalid"
	}
	if password == "" {
		errs[FieldPassword] = "validation.password.required"
	}
	return errs
}

// ValidateRegister checks the registration form.
func ValidateRegister(name, email, password string) map[string]string {
	errs := map[string]string{}
	switch n := utf8.RuneCountInString(strings.TrimSpace(name)); {
	case n == 0:
		errs[FieldName] = "validation.name.required"
	case n > maxCredentialLength:
		errs[FieldName] = "validation.name.max255"
	}
	switch {
	case utf8.RuneCountInString(email) > maxCredentialLength:
		errs[FieldEmail] = "validation.email.max"
	case !ValidEmail(email):
		errs[FieldEmail] = "validation.email.invalid"
	}
	switch n := utf8.RuneCountInString(password); {
	case n < minPasswordLength:
		errs[FieldPassword] = "validation.password.min"
	case n > maxCredentialLength:
		errs[FieldPassword] = "validation.password.max"
	}
	return errs
}

// ValidateFeedback checks the feedback form and returns the parsed rating.
func ValidateFeedback(name, message, rating string) (int, map[string]string) {
	errs := map[string]string{}
	switch n := utf8.RuneCountInString(strings.TrimSpace(name)); {
	case n == 0:
		errs[FieldName] = "validation.name.required"
	case n > maxFeedbackName:
		errs[FieldName] = "validation.name.max50"
	}
	switch n := utf8.RuneCountInString(strings.TrimSpace(message)); {
	case n == 0:
		errs[FieldMessage] = "validation.message.required"
	case n > maxFeedbackMessage:
		errs[FieldMessage] = "validation.message.max"
	}

	rating = strings.TrimSpace(rating)
	value, err := strconv.Atoi(rating)
	switch {
	case rating == "":
		errs[FieldRating] = "validation.rating.required"
	case err != nil || value < 1 || value > 5:
		errs[FieldRating] = "validation.rating.range"
	}
	return value, errs
}

// ValidEmail reports whether email is syntactically valid. Internationalised domains are accepted
// after conversion to their ASCII form.
func ValidEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if !isDomainValid(domain) {
		return false
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return false
	}
	return emailPattern.MatchString(local + "@" + asciiDomain)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
