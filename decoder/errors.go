// SPDX-License-Identifier: EPL-2.0

package decoder

import "errors"

var (
	ErrFileUnavailable = errors.New("file unavailable")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrDecodeFailed    = errors.New("decode failed")

	ErrBusy           = errors.New("decoder is busy")
	ErrNoTrack        = errors.New("no track given")
	ErrInvalidCommand = errors.New("invalid command")
	ErrSeekFailed     = errors.New("seek failed")
	ErrClosed         = errors.New("decoder control is closed")

	ErrInvalidPlugin   = errors.New("invalid plugin")
	ErrDuplicatePlugin = errors.New("plugin already registered")
	ErrMissingOption   = errors.New("missing engine option")
)
