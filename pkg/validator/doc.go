// Package validator provides rule-based input validation for the forms the
// storefront submits: credentials, profiles and addresses.
//
// Checks run client-side purely to fail fast; the backend re-validates
// everything authoritatively. Rules compose through Apply, which runs all of
// them and reports every failure at once:
//
//	err := validator.Apply(
//		validator.Required("email", email),
//		validator.Email("email", email),
//		validator.MinLen("password", password, 6),
//	)
package validator
