// SPDX-License-Identifier: EPL-2.0

package pbxdecode

import "errors"

var ErrUnknownPlugin = errors.New("unknown plugin")
