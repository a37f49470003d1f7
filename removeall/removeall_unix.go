package removeall // import "code.cloudfoundry.org/quillfs/removeall"

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// RemoveAll deletes path and, if it is a directory, everything underneath it.
// It works through unlinkat on an open parent descriptor so that arbitrarily
// deep trees do not hit PATH_MAX. A missing path is not an error.
func RemoveAll(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	parent, err := os.Open(filepath.Dir(path))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer parent.Close()

	return removeAll(parent, filepath.Base(path))
}

// RemoveContents deletes everything underneath path but keeps the directory
// itself. This is the opaque whiteout semantic: a layer resets a directory's
// lower-layer contents and then provides its own. A missing path is treated
// as already empty. A non-directory at path is deleted outright.
func RemoveContents(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return RemoveAll(path)
	}

	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()

	return removeDirEntries(dir)
}

func removeAll(parentFile *os.File, path string) error {
	parentFd := int(parentFile.Fd())
	err := unix.Unlinkat(parentFd, path, 0)
	if err == nil || err == unix.ENOENT {
		return nil
	}

	if err != unix.EISDIR && err != unix.EPERM {
		return err
	}

	fd, err := unix.Openat(parentFd, path, unix.O_RDONLY|unix.O_NOFOLLOW, 0)
	if err != nil {
		return err
	}

	file := os.NewFile(uintptr(fd), path)

	recurseErr := removeDirEntries(file)

	file.Close()

	unlinkErr := unix.Unlinkat(parentFd, path, unix.AT_REMOVEDIR)
	if unlinkErr == nil {
		return nil
	}
	if recurseErr != nil {
		return recurseErr
	}
	return unlinkErr
}

func removeDirEntries(file *os.File) error {
	for {
		names, readErr := file.Readdirnames(1024)
		var removeErr error
		for _, name := range names {
			if err := removeAll(file, name); err != nil {
				removeErr = err
			}
		}
		if readErr == io.EOF {
			return removeErr
		}
		if len(names) == 0 {
			return readErr
		}
	}
}
