// SPDX-License-Identifier: EPL-2.0

package xm

import "errors"

var (
	ErrNotXMFile         = errors.New("not an XM module")
	ErrUnsupportedModule = errors.New("unsupported XM module")
)
