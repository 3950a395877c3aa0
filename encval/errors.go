package encval

import "errors"

var (
	ErrInvalidBits        = errors.New("encval: bit width must be between 1 and 32")
	ErrNameNotLowercase   = errors.New("encval: encoded value names must be lowercase")
	ErrAlreadyInitialized = errors.New("encval: encoded value already initialized")
	ErrNotInitialized     = errors.New("encval: encoded value used before initialization")
	ErrValueOutOfRange    = errors.New("encval: value does not fit the encoded bit width")
	ErrDuplicateName      = errors.New("encval: encoded value name already registered")
	ErrTableTooLarge      = errors.New("encval: enumeration table does not fit the bit width")
	ErrValueNotIndexed    = errors.New("encval: value is not present in the enumeration table")
	ErrInvalidFactor      = errors.New("encval: decimal factor must be positive")
	ErrInvalidMapping     = errors.New("encval: remapping table does not fit the bit width")
)
