package clipboard

import "errors"

// ErrClipboardUnavailable reports that the platform has no usable clipboard utility.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")
