package frame

import "errors"

var errColumnLengthMismatch = errors.New("frame: columns have mismatched row counts")
