//go:build linux

package walker

import (
	"os"
	"syscall"
	"time"
)

// ctime extracts the inode change time from platform metadata, when
// available. Returns the zero Time otherwise.
func ctime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
}
