package fetcher // import "code.cloudfoundry.org/quillfs/fetcher"

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
)

//go:generate counterfeiter . LayerStreamer

type LayerStreamer interface {
	StreamLayer(logger lager.Logger, layerID string) (io.ReadCloser, int64, error)
}

// CachedStreamer keeps a copy of every streamed layer in a cache directory.
// Unpacking reads each layer twice, so everything after the first stream is
// served from the local copy instead of rescanning the image archive.
type CachedStreamer struct {
	cachePath     string
	layerStreamer LayerStreamer
}

func NewCachedStreamer(cachePath string, layerStreamer LayerStreamer) *CachedStreamer {
	return &CachedStreamer{
		cachePath:     cachePath,
		layerStreamer: layerStreamer,
	}
}

func (s *CachedStreamer) StreamLayer(logger lager.Logger, layerID string) (io.ReadCloser, int64, error) {
	logger = logger.Session("cached-streaming", lager.Data{"layerID": layerID})
	logger.Debug("starting")
	defer logger.Debug("ending")

	if !s.cachedLookup(layerID) {
		logger.Debug("cache-miss")

		stream, _, err := s.layerStreamer.StreamLayer(logger, layerID)
		if err != nil {
			return nil, 0, err
		}

		if err := s.cache(logger, layerID, stream); err != nil {
			return nil, 0, errorspkg.Wrap(err, "caching layer")
		}
	}

	return s.cachedReader(layerID)
}

func (s *CachedStreamer) cache(logger lager.Logger, layerID string, stream io.ReadCloser) error {
	logger = logger.Session("creating-cache-entry", lager.Data{"layerID": layerID})
	logger.Debug("starting")
	defer logger.Debug("ending")
	defer stream.Close()

	writer, err := os.Create(s.cachedLayerPath(layerID))
	if err != nil {
		return err
	}
	defer writer.Close()

	_, err = io.Copy(writer, stream)
	return err
}

func (s *CachedStreamer) cachedReader(layerID string) (io.ReadCloser, int64, error) {
	file, err := os.Open(s.cachedLayerPath(layerID))
	if err != nil {
		return nil, 0, err
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, err
	}

	return file, stat.Size(), nil
}

func (s *CachedStreamer) cachedLookup(layerID string) bool {
	_, err := os.Stat(s.cachedLayerPath(layerID))
	return !os.IsNotExist(err)
}

func (s *CachedStreamer) cachedLayerPath(layerID string) string {
	flattened := strings.NewReplacer("/", "-", ":", "-").Replace(layerID)
	return filepath.Join(s.cachePath, flattened)
}
