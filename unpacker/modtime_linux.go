//go:build linux
// +build linux

package unpacker

import (
	"time"

	"golang.org/x/sys/unix"
)

// changeModTime restores an entry's recorded modification time without
// following symlinks, leaving the access time untouched.
func changeModTime(path string, modTime time.Time) error {
	// Some archives leave the mtime zeroed, which utimensat rejects.
	if modTime.IsZero() {
		modTime = time.Now()
	}

	ts := []unix.Timespec{
		{Sec: 0, Nsec: unix.UTIME_OMIT},
		unix.NsecToTimespec(modTime.UnixNano()),
	}

	return unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, unix.AT_SYMLINK_NOFOLLOW)
}
