package unpacker // import "code.cloudfoundry.org/quillfs/unpacker"

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	securejoin "github.com/cyphar/filepath-securejoin"
	errorspkg "github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"code.cloudfoundry.org/quillfs/quill"
	"code.cloudfoundry.org/quillfs/removeall"
)

//go:generate counterfeiter . LayerStreamer

type LayerStreamer interface {
	StreamLayer(logger lager.Logger, layerID string) (io.ReadCloser, int64, error)
}

// TarUnpacker merges one layer tarball onto the destination tree. A layer is
// applied in two sequential passes: whiteout resolution first, then
// materialization of content entries. The layer stream is opened once per
// pass, so the layer source must be able to serve the same layer twice.
type TarUnpacker struct {
	layerStreamer LayerStreamer
}

func NewTarUnpacker(layerStreamer LayerStreamer) *TarUnpacker {
	return &TarUnpacker{
		layerStreamer: layerStreamer,
	}
}

func (u *TarUnpacker) Unpack(logger lager.Logger, spec quill.UnpackSpec) (quill.UnpackOutput, error) {
	logger = logger.Session("unpacking-with-tar", lager.Data{"spec": spec})
	logger.Info("starting")
	defer logger.Info("ending")

	entries, err := u.enumerateLayer(logger, spec)
	if err != nil {
		return quill.UnpackOutput{}, err
	}

	if err := u.resolveWhiteouts(logger, entries); err != nil {
		return quill.UnpackOutput{}, err
	}

	return u.materializeLayer(logger, spec)
}

// enumerateLayer streams through the layer once, classifying every entry
// without touching the destination tree. A malformed whiteout aborts here,
// before the layer has had any effect.
func (u *TarUnpacker) enumerateLayer(logger lager.Logger, spec quill.UnpackSpec) ([]layerEntry, error) {
	stream, _, err := u.layerStreamer.StreamLayer(logger, spec.LayerID)
	if err != nil {
		return nil, errorspkg.Wrapf(err, "streaming layer `%s`", spec.LayerID)
	}
	defer stream.Close()

	entries := []layerEntry{}
	tarReader := tar.NewReader(stream)
	for {
		tarHeader, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errorspkg.Wrapf(err, "reading layer `%s`", spec.LayerID)
		}

		entry, err := classifyEntry(spec.TargetPath, tarHeader.Name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// resolveWhiteouts deletes everything the layer's whiteout markers point at.
// Lower layers may legitimately not have created the target, so a missing
// target is not an error.
func (u *TarUnpacker) resolveWhiteouts(logger lager.Logger, entries []layerEntry) error {
	for _, entry := range entries {
		switch entry.kind {
		case opaqueWhiteoutEntry:
			logger.Debug("opaque-whiteout", lager.Data{"path": entry.path})
			if err := removeall.RemoveContents(entry.path); err != nil {
				return errorspkg.Wrapf(err, "resetting opaque directory `%s`", entry.path)
			}

		case whiteoutEntry:
			logger.Debug("whiteout", lager.Data{"path": entry.path})
			if err := removeNode(entry.path); err != nil {
				return errorspkg.Wrapf(err, "deleting whited-out path `%s`", entry.path)
			}
		}
	}

	return nil
}

func (u *TarUnpacker) materializeLayer(logger lager.Logger, spec quill.UnpackSpec) (quill.UnpackOutput, error) {
	stream, _, err := u.layerStreamer.StreamLayer(logger, spec.LayerID)
	if err != nil {
		return quill.UnpackOutput{}, errorspkg.Wrapf(err, "streaming layer `%s`", spec.LayerID)
	}
	defer stream.Close()

	var bytesWritten int64
	tarReader := tar.NewReader(stream)
	for {
		tarHeader, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return quill.UnpackOutput{}, errorspkg.Wrapf(err, "reading layer `%s`", spec.LayerID)
		}

		entry, err := classifyEntry(spec.TargetPath, tarHeader.Name)
		if err != nil {
			return quill.UnpackOutput{}, err
		}
		if entry.kind != contentEntry {
			continue
		}

		entrySize, err := u.handleEntry(spec.TargetPath, entry.path, tarReader, tarHeader)
		if err != nil {
			return quill.UnpackOutput{}, err
		}
		bytesWritten += entrySize
	}

	return quill.UnpackOutput{BytesWritten: bytesWritten}, nil
}

func (u *TarUnpacker) handleEntry(targetPath, entryPath string, tarReader *tar.Reader, tarHeader *tar.Header) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(entryPath), 0755); err != nil {
		return 0, errorspkg.Wrapf(err, "making parent directory for `%s`", entryPath)
	}

	if err := clearExisting(entryPath, tarHeader); err != nil {
		return 0, err
	}

	switch tarHeader.Typeflag {
	case tar.TypeDir:
		if err := u.createDirectory(entryPath, tarHeader); err != nil {
			return 0, err
		}

	case tar.TypeReg, tar.TypeRegA:
		size, err := u.createRegularFile(entryPath, tarHeader, tarReader)
		if err != nil {
			return 0, err
		}
		return size, nil

	case tar.TypeSymlink:
		if err := u.createSymlink(entryPath, tarHeader); err != nil {
			return 0, err
		}

	case tar.TypeLink:
		if err := u.createLink(targetPath, entryPath, tarHeader); err != nil {
			return 0, err
		}

	case tar.TypeBlock, tar.TypeChar:
		if err := u.createDeviceNode(entryPath, tarHeader); err != nil {
			return 0, err
		}

	case tar.TypeFifo:
		if err := u.createFifo(entryPath, tarHeader); err != nil {
			return 0, err
		}
	}

	return 0, nil
}

// clearExisting applies the type-change overwrite rule: whatever sits at the
// path is removed before the new node goes down, except for two overwritable
// pairs. A directory may stay when the layer also brings a directory, and a
// plain file may be overwritten in place by another plain file. The check
// never follows symlinks, so a dangling or foreign link is unlinked rather
// than written through.
func clearExisting(path string, tarHeader *tar.Header) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) || errorspkg.Is(err, unix.ENOTDIR) {
			return nil
		}
		return errorspkg.Wrapf(err, "checking existing path `%s`", path)
	}

	switch {
	case info.IsDir() && tarHeader.Typeflag == tar.TypeDir:
		return nil
	case info.Mode().IsRegular() && (tarHeader.Typeflag == tar.TypeReg || tarHeader.Typeflag == tar.TypeRegA):
		return nil
	case info.IsDir():
		if err := removeall.RemoveAll(path); err != nil {
			return errorspkg.Wrapf(err, "clobbering directory `%s`", path)
		}
	default:
		if err := os.Remove(path); err != nil {
			return errorspkg.Wrapf(err, "clobbering path `%s`", path)
		}
	}

	return nil
}

// removeNode deletes an explicit whiteout's target: recursively for a real
// directory, a single unlink for anything else. Missing targets are a no-op.
func removeNode(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) || errorspkg.Is(err, unix.ENOTDIR) {
			return nil
		}
		return err
	}

	if info.IsDir() {
		return removeall.RemoveAll(path)
	}
	return os.Remove(path)
}

func (u *TarUnpacker) createDirectory(path string, tarHeader *tar.Header) error {
	if _, err := os.Lstat(path); err != nil {
		if err := os.Mkdir(path, tarHeader.FileInfo().Mode().Perm()); err != nil {
			return errorspkg.Wrapf(err, "creating directory `%s`", path)
		}
	}

	if err := chownNode(path, tarHeader); err != nil {
		return err
	}

	// mkdir is subject to umask, so the mode has to be applied explicitly.
	if err := os.Chmod(path, tarHeader.FileInfo().Mode().Perm()); err != nil {
		return errorspkg.Wrapf(err, "chmoding directory `%s`", path)
	}

	if err := changeModTime(path, tarHeader.ModTime); err != nil {
		return errorspkg.Wrapf(err, "setting the modtime for directory `%s`", path)
	}

	return nil
}

func (u *TarUnpacker) createRegularFile(path string, tarHeader *tar.Header, tarReader *tar.Reader) (int64, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, tarHeader.FileInfo().Mode().Perm())
	if err != nil {
		return 0, errorspkg.Wrapf(err, "creating file `%s`", path)
	}

	size, err := io.Copy(file, tarReader)
	if err != nil {
		_ = file.Close()
		return 0, errorspkg.Wrapf(err, "writing to file `%s`", path)
	}

	if err := file.Close(); err != nil {
		return 0, errorspkg.Wrapf(err, "closing file `%s`", path)
	}

	if err := chownNode(path, tarHeader); err != nil {
		return 0, err
	}

	// open(2) with O_CREATE is subject to umask as well.
	if err := os.Chmod(path, tarHeader.FileInfo().Mode().Perm()); err != nil {
		return 0, errorspkg.Wrapf(err, "chmoding file `%s`", path)
	}

	if err := changeModTime(path, tarHeader.ModTime); err != nil {
		return 0, errorspkg.Wrapf(err, "setting the modtime for file `%s`", path)
	}

	return size, nil
}

func (u *TarUnpacker) createSymlink(path string, tarHeader *tar.Header) error {
	if err := os.Symlink(tarHeader.Linkname, path); err != nil {
		return errorspkg.Wrapf(err, "creating symlink `%s` -> `%s`", path, tarHeader.Linkname)
	}

	if err := chownNode(path, tarHeader); err != nil {
		return err
	}

	return changeModTime(path, tarHeader.ModTime)
}

func (u *TarUnpacker) createLink(targetPath, path string, tarHeader *tar.Header) error {
	// Hard links are inode based, so the link target has to be resolved
	// inside the destination tree the same way entry paths are.
	unsafeDir, base := filepath.Split(filepath.Clean("/" + tarHeader.Linkname))
	linkDir, err := securejoin.SecureJoin(targetPath, unsafeDir)
	if err != nil {
		return errorspkg.Wrapf(err, "resolving hard link target `%s`", tarHeader.Linkname)
	}

	linkName := filepath.Join(linkDir, base)
	if err := os.Link(linkName, path); err != nil {
		return errorspkg.Wrapf(err, "creating hard link `%s` -> `%s`", path, linkName)
	}

	return nil
}

func (u *TarUnpacker) createDeviceNode(path string, tarHeader *tar.Header) error {
	mode := uint32(tarHeader.FileInfo().Mode().Perm())
	if tarHeader.Typeflag == tar.TypeBlock {
		mode |= unix.S_IFBLK
	} else {
		mode |= unix.S_IFCHR
	}

	dev := unix.Mkdev(uint32(tarHeader.Devmajor), uint32(tarHeader.Devminor))
	if err := unix.Mknod(path, mode, int(dev)); err != nil {
		return errorspkg.Wrapf(err, "creating device node `%s`", path)
	}

	if err := chownNode(path, tarHeader); err != nil {
		return err
	}

	return changeModTime(path, tarHeader.ModTime)
}

func (u *TarUnpacker) createFifo(path string, tarHeader *tar.Header) error {
	if err := unix.Mkfifo(path, uint32(tarHeader.FileInfo().Mode().Perm())); err != nil {
		return errorspkg.Wrapf(err, "creating fifo `%s`", path)
	}

	if err := chownNode(path, tarHeader); err != nil {
		return err
	}

	return changeModTime(path, tarHeader.ModTime)
}

// chownNode applies the numeric owner recorded in the entry. Names are never
// resolved, the destination tree has no user database of its own. Only done
// when running as root, which extraction requires anyway.
func chownNode(path string, tarHeader *tar.Header) error {
	if os.Getuid() != 0 {
		return nil
	}

	if err := os.Lchown(path, tarHeader.Uid, tarHeader.Gid); err != nil {
		return errorspkg.Wrapf(err, "chowning `%s` to %d:%d", path, tarHeader.Uid, tarHeader.Gid)
	}
	return nil
}
