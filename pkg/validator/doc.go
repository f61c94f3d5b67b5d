// Package validator provides small, immutable value validators and the
// fail-fast Chain used to compose them.
//
// Every validator implements the single-method Validator interface: it
// receives one candidate value and either returns nil or a
// *ValidationError carrying a human-readable message plus a translation key
// and parameters. Validators never see the field name; the field layer adds
// it when it reports the error.
//
// # Architecture
//
// Each source file groups one family of validators:
//   - type_rules.go       – TypeValidator (Type, TypeOf, Integer, Float, ...) and StringValidator
//   - pattern_rules.go    – RegexValidator and URLValidator (with IDNA fallback)
//   - uuid_rules.go       – UUIDValidator
//   - comparable_rules.go – LimitValidator and the MaxValue/MinValue/MaxLength/MinLength presets
//
// Chain (core.go) is the composition unit. Normalize turns the loose forms a
// caller may supply (nil, one validator, a function, a slice) into a Chain
// once, at definition time. Chain.Validate stops at the first failure.
//
// # Usage
//
//	chain, err := validator.NewChain(
//	    validator.String(),
//	    validator.MinLength(3),
//	    validator.MustRegex(`^[a-z]`, validator.IgnoreCase),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := chain.Validate("ab"); err != nil {
//	    // "Ensure this value has length of at least 3 (it has length 2)."
//	}
//
// # Error Handling
//
// Three error kinds are exposed as sentinels: ErrValidationFailed,
// ErrFieldRequired and ErrMalformedConfiguration. ValidationError unwraps to
// its kind, so errors.Is works on any returned error. ValidationErrors
// aggregates failures of independent fields for callers validating a whole
// record.
package validator
