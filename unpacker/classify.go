package unpacker

import (
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	errorspkg "github.com/pkg/errors"

	"code.cloudfoundry.org/quillfs/quill"
)

const whiteoutPrefix = ".wh."
const opaqueWhiteout = ".wh..wh..opq"

type entryKind int

const (
	contentEntry entryKind = iota
	whiteoutEntry
	opaqueWhiteoutEntry
)

// layerEntry is a classified layer archive entry. Path is the resolved
// location under the target root: for content entries the node to
// materialize, for explicit whiteouts the sibling to delete, for opaque
// whiteouts the directory to reset.
type layerEntry struct {
	kind entryKind
	path string
}

// classifyEntry resolves a layer-relative entry name against the target root
// and decides whether it is content, an explicit whiteout or an opaque
// whiteout. The parent directory is resolved with securejoin so that symlinks
// already present in the tree cannot redirect a write outside the root.
//
// A whiteout name with no parent component at all (a bare `.wh.x`, as opposed
// to `./.wh.x`) has nothing to be relative to and marks the archive as
// malformed.
func classifyEntry(targetPath, name string) (layerEntry, error) {
	if !strings.ContainsRune(name, '/') && strings.HasPrefix(name, whiteoutPrefix) {
		return layerEntry{}, quill.NewFormatErr(
			errorspkg.Errorf("whiteout entry `%s` has no parent directory", name))
	}

	// Rooted clean: `..` components cannot climb above the layer root.
	cleaned := filepath.Clean("/" + name)
	unsafeDir, base := filepath.Split(cleaned)

	parentPath, err := securejoin.SecureJoin(targetPath, unsafeDir)
	if err != nil {
		return layerEntry{}, errorspkg.Wrapf(err, "resolving parent directory of `%s`", name)
	}

	switch {
	case base == opaqueWhiteout:
		return layerEntry{kind: opaqueWhiteoutEntry, path: parentPath}, nil
	case strings.HasPrefix(base, whiteoutPrefix):
		// The stripped name must be a real sibling name. An empty name or a
		// dot component would point the deletion at the parent directory
		// itself, or above it.
		stripped := strings.TrimPrefix(base, whiteoutPrefix)
		if stripped == "" || stripped == "." || stripped == ".." {
			return layerEntry{}, quill.NewFormatErr(
				errorspkg.Errorf("whiteout entry `%s` does not name a sibling", name))
		}
		return layerEntry{kind: whiteoutEntry, path: filepath.Join(parentPath, stripped)}, nil
	default:
		return layerEntry{kind: contentEntry, path: filepath.Join(parentPath, base)}, nil
	}
}
