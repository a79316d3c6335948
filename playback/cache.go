// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"

	"github.com/ik5/audplay/backend"
)

// assetCache maps a reference to its uploaded buffer. Entries are never
// evicted; they live until the context closes.
type assetCache struct {
	entries map[string]backend.Buffer
}

func newAssetCache() *assetCache {
	return &assetCache{entries: make(map[string]backend.Buffer)}
}

func (a *assetCache) get(ref string) (backend.Buffer, bool) {
	b, ok := a.entries[ref]
	return b, ok
}

func (a *assetCache) put(ref string, b backend.Buffer) {
	a.entries[ref] = b
}

func (a *assetCache) len() int { return len(a.entries) }

func (a *assetCache) close() error {
	var errs []error
	for ref, b := range a.entries {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(a.entries, ref)
	}
	return errors.Join(errs...)
}
