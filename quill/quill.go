package quill // import "code.cloudfoundry.org/quillfs/quill"

import (
	"io"
	"time"

	"code.cloudfoundry.org/lager/v3"
)

const MetricExtractionTime = "ExtractionTime"
const MetricLayerUnpackTime = "LayerUnpackTime"

//go:generate counterfeiter . ImageSource
//go:generate counterfeiter . Unpacker
//go:generate counterfeiter . Hook
//go:generate counterfeiter . PrivilegeChecker
//go:generate counterfeiter . MetricsEmitter

// ImageManifest describes a docker-save style image archive: the ordered
// list of layer tarballs to apply and the tags the image was saved under.
type ImageManifest struct {
	Layers   []string
	RepoTags []string
}

type ImageSource interface {
	Manifest(logger lager.Logger) (ImageManifest, error)
	StreamLayer(logger lager.Logger, layerID string) (io.ReadCloser, int64, error)
}

type UnpackSpec struct {
	LayerID    string
	TargetPath string
}

type UnpackOutput struct {
	BytesWritten int64
}

type Unpacker interface {
	Unpack(logger lager.Logger, spec UnpackSpec) (UnpackOutput, error)
}

// Hook is a single filesystem mutation applied to the finished rootfs after
// all layers have been merged.
type Hook interface {
	Name() string
	Apply(logger lager.Logger, rootfsPath string) error
}

type PrivilegeChecker interface {
	CheckPrivileged() error
}

type MetricsEmitter interface {
	TryEmitDurationFrom(logger lager.Logger, name string, from time.Time)
}
