// Package refined provides validated wrapper types: a primitive (or another
// wrapper) lifted into a domain-restricted type whose validity is enforced at
// construction and re-checked at every serialization boundary.
//
//   - Definition[W,U] is the single source of truth: kind (Opaque/Transparent),
//     base Underlying[U], predicates, and wrap/unwrap functions.
//   - Make validates; UnsafeMake does not and exists for failure fixtures only.
//   - Adapters are derived explicitly from a definition: schema.Derive
//     (structural validator), codec.Plain (scalar text), pickle.Derive (JSON).
//     Records are composed from their fields' adapters.
//   - Failures are uniform: *ValidationError (predicate), *ParseError
//     (malformed input, message passed through verbatim), wrapped by
//     *DecodeFailure at decode boundaries; Issues for validators.
//
// Design policy:
//   - Keep only public APIs in the root package; put structured-format details
//     under internal/.
//   - Derivation packages depend on the root; the root depends on none of them.
//
// Typical usage:
//
//	type usernameTag struct{}
//	type Username = refined.Wrapped[string, usernameTag]
//
//	var UsernameDef = refined.NewtypeOf[usernameTag]("Username", refined.String(), refined.NonEmpty())
//
//	u, err := UsernameDef.Make("gopher")
//	issues := schema.Derive[Username](UsernameDef).Validate(u)
//	v, err := pickle.Derive[Username](UsernameDef).Decode(`"gopher"`)
package refined
