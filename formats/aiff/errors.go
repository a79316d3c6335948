// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile           = errors.New("not an AIFF file")
	ErrUnsupportedSampleSize = errors.New("only 8, 16, 24 and 32-bit AIFF supported")
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
