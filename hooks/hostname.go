package hooks // import "code.cloudfoundry.org/quillfs/hooks"

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	securejoin "github.com/cyphar/filepath-securejoin"
	errorspkg "github.com/pkg/errors"
)

// Hostname writes the rootfs' etc/hostname file.
type Hostname struct {
	hostname string
}

func NewHostname(hostname string) *Hostname {
	return &Hostname{hostname: hostname}
}

func (h *Hostname) Name() string {
	return "hostname"
}

func (h *Hostname) Apply(logger lager.Logger, rootfsPath string) error {
	logger = logger.Session("writing-hostname", lager.Data{"hostname": h.hostname})
	logger.Debug("starting")
	defer logger.Debug("ending")

	etcPath, err := securejoin.SecureJoin(rootfsPath, "etc")
	if err != nil {
		return errorspkg.Wrap(err, "resolving etc directory")
	}

	if err := os.MkdirAll(etcPath, 0755); err != nil {
		return errorspkg.Wrap(err, "making etc directory")
	}

	hostnamePath := filepath.Join(etcPath, "hostname")
	if err := os.WriteFile(hostnamePath, []byte(h.hostname+"\n"), 0644); err != nil {
		return errorspkg.Wrapf(err, "writing hostname file `%s`", hostnamePath)
	}

	return nil
}
