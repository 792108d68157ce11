package catalog

import "errors"

// ErrInvalidFilter skin type filter di luar daftar
var ErrInvalidFilter = errors.New("invalid skin type filter")
