package services

import (
	"regexp"
	"strings"
)

var (
	clientEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	clientPhonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)
)

// ValidateEmail reports whether email is empty or looks like an address.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return clientEmailPattern.MatchString(email)
}

// ValidatePhone accepts empty values and international numbers such as
// "+34 600 123 456".
func ValidatePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	return clientPhonePattern.MatchString(phone)
}

// ValidateClientDetails returns field -> message for every problem with c.
// A quotation cannot be saved without a client name.
func ValidateClientDetails(c ClientDetails) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "Client name is required"
	}
	if !ValidateEmail(c.Email) {
		errs["email"] = "Invalid email format"
	}
	if !ValidatePhone(c.Phone) {
		errs["phone"] = "Invalid phone number"
	}
	return errs
}

// Normalize trims every field.
func (c ClientDetails) Normalize() ClientDetails {
	return ClientDetails{
		Name:    strings.TrimSpace(c.Name),
		Country: strings.TrimSpace(c.Country),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
	}
}
