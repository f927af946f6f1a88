// Package authz implements the request authorization contract:
//
//	Authenticate → Authorize → CheckOwnership (single-resource mutations)
//
// Authenticate resolves a bearer token to a principal with exactly one
// credential store read. Authorize compares the principal's role against a
// RoleSet fixed at route construction. CheckOwnership and GuardSelfAction are
// pure predicates evaluated inside resource operations once the target is known.
//
// Every gate returns either a value to thread forward or a typed error that
// matches one of the domain sentinels with errors.Is.
package authz
