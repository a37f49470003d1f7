package commands

import (
	"code.cloudfoundry.org/lager/v3"

	"code.cloudfoundry.org/quillfs/commands/config"
	"code.cloudfoundry.org/quillfs/metrics"
	"code.cloudfoundry.org/quillfs/quill"
)

func createMetricsEmitter(logger lager.Logger, cfg config.Config) (quill.MetricsEmitter, error) {
	if cfg.MetronEndpoint == "" {
		return metrics.NewNoopEmitter(), nil
	}

	logger.Debug("metrics-enabled", lager.Data{"metronEndpoint": cfg.MetronEndpoint})
	return metrics.NewEmitter(cfg.MetronEndpoint)
}
