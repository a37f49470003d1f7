package quill

import (
	"os"
	"time"

	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
)

type ExtractSpec struct {
	DestinationPath string
}

// Extractor materializes an image's root filesystem at a destination path by
// applying every layer in manifest order, then running the post-processing
// hooks. Layers mutate the destination tree directly and there is no
// rollback: a failed run leaves whatever was written so far on disk.
type Extractor struct {
	imageSource      ImageSource
	unpacker         Unpacker
	privilegeChecker PrivilegeChecker
	metricsEmitter   MetricsEmitter
	hooks            []Hook
}

func NewExtractor(
	imageSource ImageSource, unpacker Unpacker,
	privilegeChecker PrivilegeChecker, metricsEmitter MetricsEmitter,
	hooks ...Hook,
) *Extractor {
	return &Extractor{
		imageSource:      imageSource,
		unpacker:         unpacker,
		privilegeChecker: privilegeChecker,
		metricsEmitter:   metricsEmitter,
		hooks:            hooks,
	}
}

func (e *Extractor) Extract(logger lager.Logger, spec ExtractSpec) error {
	defer e.metricsEmitter.TryEmitDurationFrom(logger, MetricExtractionTime, time.Now())

	logger = logger.Session("quill-extracting", lager.Data{"spec": spec})
	logger.Info("starting")
	defer logger.Info("ending")

	if err := e.privilegeChecker.CheckPrivileged(); err != nil {
		logger.Error("privilege-check-failed", err)
		return NewPermissionErr(err)
	}

	if _, err := os.Lstat(spec.DestinationPath); err == nil {
		return NewAlreadyExistsErr(errorspkg.Errorf("destination path `%s` already exists", spec.DestinationPath))
	} else if !os.IsNotExist(err) {
		return errorspkg.Wrapf(err, "checking destination path `%s`", spec.DestinationPath)
	}

	manifest, err := e.imageSource.Manifest(logger)
	if err != nil {
		return errorspkg.Wrap(err, "reading image manifest")
	}
	logger.Debug("fetched-manifest", lager.Data{"layers": manifest.Layers})

	if err := os.MkdirAll(spec.DestinationPath, 0755); err != nil {
		return errorspkg.Wrapf(err, "making destination directory `%s`", spec.DestinationPath)
	}

	for _, layerID := range manifest.Layers {
		if err := e.unpackLayer(logger, layerID, spec.DestinationPath); err != nil {
			return err
		}
	}

	for _, hook := range e.hooks {
		if err := e.applyHook(logger, hook, spec.DestinationPath); err != nil {
			return err
		}
	}

	return nil
}

func (e *Extractor) unpackLayer(logger lager.Logger, layerID, targetPath string) error {
	logger = logger.Session("unpacking-layer", lager.Data{"layerID": layerID})
	logger.Debug("starting")
	defer logger.Debug("ending")
	defer e.metricsEmitter.TryEmitDurationFrom(logger, MetricLayerUnpackTime, time.Now())

	output, err := e.unpacker.Unpack(logger, UnpackSpec{
		LayerID:    layerID,
		TargetPath: targetPath,
	})
	if err != nil {
		return errorspkg.Wrapf(err, "unpacking layer `%s`", layerID)
	}

	logger.Debug("layer-unpacked", lager.Data{"bytesWritten": output.BytesWritten})
	return nil
}

func (e *Extractor) applyHook(logger lager.Logger, hook Hook, rootfsPath string) error {
	logger = logger.Session("applying-hook", lager.Data{"hook": hook.Name()})
	logger.Debug("starting")
	defer logger.Debug("ending")

	if err := hook.Apply(logger, rootfsPath); err != nil {
		return errorspkg.Wrapf(err, "applying hook `%s`", hook.Name())
	}
	return nil
}
