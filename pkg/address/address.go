package address

import (
	"errors"

	"github.com/goodmarket/storefront-go/pkg/validator"
)

// Type distinguishes where an address is used in checkout.
type Type string

const (
	TypeShipping Type = "shipping"
	TypeBilling  Type = "billing"
)

// Address is a saved delivery or billing destination belonging to the
// authenticated user.
type Address struct {
	ID      string `json:"id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Type    Type   `json:"address_type"`
}

// Input is the payload for creating or updating an address.
type Input struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Type    Type   `json:"address_type"`
}

func (in Input) validate() error {
	err := validator.Apply(
		validator.Required("street", in.Street),
		validator.Required("city", in.City),
		validator.Required("state", in.State),
		validator.ZipCode("zip_code", in.ZipCode),
		validator.OneOf("address_type", in.Type, []Type{TypeShipping, TypeBilling}),
	)
	if err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}
