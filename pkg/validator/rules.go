package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var zipRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: FieldError{Field: field, Message: "is required"},
	}
}

// MinLen validates a minimum length in bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)},
	}
}

// MaxLen validates a maximum length in bytes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)},
	}
}

// Email validates an addressable email. The check is deliberately lenient;
// the backend remains the authority, this only catches obvious typos before
// a wasted round trip.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(strings.TrimSpace(value))
			if err != nil {
				return false
			}
			_, domain, ok := strings.Cut(addr.Address, "@")
			return ok && strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Error: FieldError{Field: field, Message: "is not a valid email address"},
	}
}

// ZipCode validates a US-style postal code, the only format the storefront
// ships to.
func ZipCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return zipRegex.MatchString(value)
		},
		Error: FieldError{Field: field, Message: "is not a valid zip code"},
	}
}

// OneOf validates membership in a fixed set of allowed values.
func OneOf[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be one of %v", allowed)},
	}
}
