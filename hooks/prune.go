package hooks

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	securejoin "github.com/cyphar/filepath-securejoin"
	errorspkg "github.com/pkg/errors"
)

const pruneDir = "usr/bin"

// PruneBinaries deletes entries under the rootfs' usr/bin whose name matches
// one of the given shell patterns. It does not descend into subdirectories.
type PruneBinaries struct {
	patterns []string
}

func NewPruneBinaries(patterns []string) *PruneBinaries {
	return &PruneBinaries{patterns: patterns}
}

func (p *PruneBinaries) Name() string {
	return "prune-binaries"
}

func (p *PruneBinaries) Apply(logger lager.Logger, rootfsPath string) error {
	logger = logger.Session("pruning-binaries", lager.Data{"patterns": p.patterns})
	logger.Debug("starting")
	defer logger.Debug("ending")

	binPath, err := securejoin.SecureJoin(rootfsPath, pruneDir)
	if err != nil {
		return errorspkg.Wrapf(err, "resolving `%s`", pruneDir)
	}

	entries, err := os.ReadDir(binPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("nothing-to-prune", lager.Data{"path": binPath})
			return nil
		}
		return errorspkg.Wrapf(err, "reading `%s`", binPath)
	}

	for _, entry := range entries {
		matched, err := p.matches(entry.Name())
		if err != nil {
			return err
		}
		if !matched || entry.IsDir() {
			continue
		}

		entryPath := filepath.Join(binPath, entry.Name())
		logger.Debug("pruning", lager.Data{"path": entryPath})
		if err := os.Remove(entryPath); err != nil {
			return errorspkg.Wrapf(err, "removing `%s`", entryPath)
		}
	}

	return nil
}

func (p *PruneBinaries) matches(name string) (bool, error) {
	for _, pattern := range p.patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, errorspkg.Wrapf(err, "invalid prune pattern `%s`", pattern)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
