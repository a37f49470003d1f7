package privchecker // import "code.cloudfoundry.org/quillfs/privchecker"

import (
	"os"

	errorspkg "github.com/pkg/errors"
)

// PrivilegeChecker verifies the environment precondition for extraction:
// writing arbitrary numeric ownership and device nodes needs real root.
type PrivilegeChecker struct {
}

func NewPrivilegeChecker() *PrivilegeChecker {
	return &PrivilegeChecker{}
}

func (c *PrivilegeChecker) CheckPrivileged() error {
	if euid := os.Geteuid(); euid != 0 {
		return errorspkg.Errorf("preserving ownership and device nodes requires root privileges, running as uid %d", euid)
	}

	return nil
}
