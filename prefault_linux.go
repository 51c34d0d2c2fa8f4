//go:build linux

package dawgdex

import "golang.org/x/sys/unix"

// prefaultRegion asks the kernel to fault in pages of a read-only mapping
// ahead of the first query. Best-effort: errors are silently ignored.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
}
