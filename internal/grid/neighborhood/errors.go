package neighborhood

import "errors"

// ErrRadiusTooLarge is returned when a search radius exceeds MaxRadius.
var ErrRadiusTooLarge = errors.New("neighborhood: radius too large")
