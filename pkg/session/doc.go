// Package session owns the authenticated-user identity for the storefront
// SDK: who is logged in, whether startup state has resolved yet, and the
// login/register/logout lifecycle.
//
// # States
//
//	Unknown ──Initialize──► Anonymous │ Authenticated
//	Authenticated ──Logout / 401─────► Anonymous
//
// The session is authenticated exactly when the token store holds both a
// credential and a cached profile. A half-present pair (credential without
// profile, or the reverse) is treated as invalid and cleared during
// Initialize — never silently assumed valid.
//
// Expiry detection is centralized: the API client fires its unauthorized
// hook on any 401 carried by an authenticated call, and HandleUnauthorized
// performs the forced-logout transition exactly once even when several
// concurrent calls observe the same expiry.
//
// # Usage
//
//	mgr := session.New(client, session.WithOnExpired(redirectToLogin))
//	client.OnUnauthorized(mgr.HandleUnauthorized)
//	mgr.Initialize(ctx)
//
//	user, err := mgr.Login(ctx, "a@b.com", "secret1")
//	switch {
//	case errors.Is(err, apiclient.ErrInvalidCredentials):
//	    // wrong email or password, let the user retry
//	case errors.Is(err, apiclient.ErrTransient):
//	    // network trouble, nothing was mutated
//	}
package session
