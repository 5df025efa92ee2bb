package cache

import (
	"github.com/branchboard/branchboard/pkg/layout"
)

// LayoutKey builds the cache key for a computed layout. The snapshot and
// plan arrive pre-hashed (see snapshot.Hashable) so callers holding only
// the hash can still address the entry; the geometry config is hashed in
// because it changes the coordinates.
func LayoutKey(snapshotHash, planHash string, cfg layout.Config) string {
	return hashKey("layout", snapshotHash, planHash, cfg)
}
