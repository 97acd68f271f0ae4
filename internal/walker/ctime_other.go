//go:build !linux

package walker

import (
	"os"
	"time"
)

// ctime is unavailable via os.FileInfo on non-Linux platforms without
// platform-specific syscalls, so the zero value is returned; CTime is an
// optional field throughout.
func ctime(_ os.FileInfo) time.Time {
	return time.Time{}
}
