package kernel

import (
	"net/mail"
	"strings"

	"orderlifecycle/internal/pkg/errs"
	"orderlifecycle/internal/pkg/guard"
)

var ErrContactInfoIsNotConstructed = errs.NewValueIsRequiredError("contact info must be created via NewContactInfo")

// ContactInfo is captured when the order is placed and never changes.
type ContactInfo struct {
	name  string
	email string
	phone string
	guard guard.ConstructorGuard
}

// NewContactInfo validates the contact of an order: the name is required and
// the email must be a single syntactically valid address. The phone is optional.
func NewContactInfo(name, email, phone string) (ContactInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ContactInfo{}, errs.NewValueIsRequiredError("contactInfo.name")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return ContactInfo{}, errs.NewValueIsRequiredError("contactInfo.email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ContactInfo{}, errs.NewValueIsInvalidErrorWithCause("contactInfo.email", err)
	}

	return ContactInfo{
		name:  name,
		email: strings.ToLower(email),
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ContactInfo) Name() string { return c.name }
func (c ContactInfo) Email() string { return c.email }
func (c ContactInfo) Phone() string { return c.phone }

func (c ContactInfo) Validate() error {
	return c.guard.Validate(ErrContactInfoIsNotConstructed)
}
