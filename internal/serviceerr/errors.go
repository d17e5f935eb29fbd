package serviceerr

import "errors"

var ErrProviderUnavailable = errors.New("signing provider unavailable")
var ErrNotConnected = errors.New("wallet not connected")
