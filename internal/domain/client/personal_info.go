package client

import (
	"strings"

	"github.com/fondos-platform/service-subscription/internal/domain"
)

// PersonalInfo holds a client's contact details in normalized form.
type PersonalInfo struct {
	FirstName string
	LastName  string
	City      string
	Email     string
	Phone     string
}

// NewPersonalInfo trims, normalizes and validates contact details.
func NewPersonalInfo(firstName, lastName, city, email, phone string) (PersonalInfo, error) {
	info := PersonalInfo{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		City:      strings.TrimSpace(city),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     normalizePhone(phone),
	}
	switch {
	case info.FirstName == "":
		return PersonalInfo{}, domain.NewValidationError("first name is required")
	case info.LastName == "":
		return PersonalInfo{}, domain.NewValidationError("last name is required")
	case info.City == "":
		return PersonalInfo{}, domain.NewValidationError("city is required")
	case len(info.Email) < 5 || !strings.Contains(info.Email, "@"):
		return PersonalInfo{}, domain.NewValidationError("email %q is not valid", email)
	case len(info.Phone) < 7 || len(info.Phone) > 15:
		return PersonalInfo{}, domain.NewValidationError("phone %q must have between 7 and 15 digits", phone)
	}
	return info, nil
}

// FullName joins first and last name.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// normalizePhone keeps digits and plus signs only.
func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
