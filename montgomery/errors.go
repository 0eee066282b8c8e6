package montgomery

import "errors"

// Errors used as panic arguments on contract violations. Operations on a
// [Form] do not return errors; feeding arguments that violate a documented
// precondition is a bug in the caller and fails fast instead.
var (
	ErrModulusEven      = errors.New("montgomery: modulus must be odd")
	ErrModulusTooSmall  = errors.New("montgomery: modulus must be at least 3")
	ErrModulusTooLarge  = errors.New("montgomery: modulus exceeds the maximum for the requested range variant")
	ErrBadTableBits     = errors.New("montgomery: pow table bits must be between 1 and 9")
	ErrNegativeExponent = errors.New("montgomery: exponent must be non-negative")
	ErrShiftTooLarge    = errors.New("montgomery: two-pow shift exponent must be below the word size")
	ErrLengthMismatch   = errors.New("montgomery: array arguments must have equal lengths")
)
