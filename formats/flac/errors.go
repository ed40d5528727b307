// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotSeekable       = errors.New("flac stream is not seekable")
	ErrInvalidStreamInfo = errors.New("flac stream info is missing or invalid")
)
