// Package validation provides the input checks that guard every query.
//
// Sequence validation runs the fixed null/empty/element contract over a
// nullable source sequence and stops at the first failure, returning the
// matching errors.AppError kind:
//
//	err := validation.Check("fruits", fruits).
//	    NotNull().
//	    NotEmpty().
//	    NoNullElements().
//	    Each(validation.NotBlankText, "contains whitespace-only strings").
//	    Err()
//
// Struct tag validation (go-playground/validator) and programmatic field
// validation cover configuration structs:
//
//	err := validation.Validate(cfg)
package validation
