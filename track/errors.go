// SPDX-License-Identifier: EPL-2.0

package track

import "errors"

var (
	ErrEmptyURI          = errors.New("track has an empty URI")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrNoMusicDirectory  = errors.New("relative path without a music directory")
)
