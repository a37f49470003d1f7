package hooks

import (
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	securejoin "github.com/cyphar/filepath-securejoin"
	errorspkg "github.com/pkg/errors"
)

// ResolvConf replaces the rootfs' etc/resolv.conf with a symlink to the
// given target, typically a resolver stub managed at runtime.
type ResolvConf struct {
	target string
}

func NewResolvConf(target string) *ResolvConf {
	return &ResolvConf{target: target}
}

func (r *ResolvConf) Name() string {
	return "resolv-conf"
}

func (r *ResolvConf) Apply(logger lager.Logger, rootfsPath string) error {
	logger = logger.Session("linking-resolv-conf", lager.Data{"target": r.target})
	logger.Debug("starting")
	defer logger.Debug("ending")

	etcPath, err := securejoin.SecureJoin(rootfsPath, "etc")
	if err != nil {
		return errorspkg.Wrap(err, "resolving etc directory")
	}

	if err := os.MkdirAll(etcPath, 0755); err != nil {
		return errorspkg.Wrap(err, "making etc directory")
	}

	resolvConfPath := filepath.Join(etcPath, "resolv.conf")
	if err := os.Remove(resolvConfPath); err != nil && !os.IsNotExist(err) {
		return errorspkg.Wrapf(err, "removing `%s`", resolvConfPath)
	}

	if err := os.Symlink(r.target, resolvConfPath); err != nil {
		return errorspkg.Wrapf(err, "creating symlink `%s` -> `%s`", resolvConfPath, r.target)
	}

	return nil
}
