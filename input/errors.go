// SPDX-License-Identifier: EPL-2.0

package input

import "errors"

var (
	ErrNotSeekable       = errors.New("position is outside the rewind buffer")
	ErrInvalidWhence     = errors.New("invalid whence")
	ErrHTTPStatus        = errors.New("unexpected HTTP status")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)
