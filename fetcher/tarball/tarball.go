package tarball // import "code.cloudfoundry.org/quillfs/fetcher/tarball"

import (
	"archive/tar"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"

	"code.cloudfoundry.org/quillfs/quill"
)

const manifestName = "manifest.json"
const repositoriesName = "repositories"

// Tarball reads a docker-save style image archive: an outer tarball holding
// manifest.json, a repositories document and one nested tarball per layer.
// Every read opens the archive file fresh, so multiple streams over the same
// layer are independent.
type Tarball struct {
	imagePath string
}

func NewTarball(imagePath string) *Tarball {
	return &Tarball{imagePath: imagePath}
}

type manifestRecord struct {
	Config   string   `json:"Config"`
	Layers   []string `json:"Layers"`
	RepoTags []string `json:"RepoTags"`
}

func (t *Tarball) Manifest(logger lager.Logger) (quill.ImageManifest, error) {
	logger = logger.Session("reading-manifest", lager.Data{"imagePath": t.imagePath})
	logger.Info("starting")
	defer logger.Info("ending")

	if err := t.validateImage(); err != nil {
		return quill.ImageManifest{}, errorspkg.Wrap(err, "invalid image")
	}

	file, err := os.Open(t.imagePath)
	if err != nil {
		return quill.ImageManifest{}, errorspkg.Wrap(err, "opening image tarball")
	}
	defer file.Close()

	var manifest []manifestRecord
	manifestFound := false
	repositoriesFound := false

	tarReader := tar.NewReader(file)
	for {
		tarHeader, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return quill.ImageManifest{}, errorspkg.Wrap(err, "reading image tarball")
		}
		if tarHeader.Typeflag != tar.TypeReg && tarHeader.Typeflag != tar.TypeRegA {
			continue
		}

		switch filepath.Clean(tarHeader.Name) {
		case manifestName:
			if err := json.NewDecoder(tarReader).Decode(&manifest); err != nil {
				return quill.ImageManifest{}, quill.NewFormatErr(errorspkg.Wrap(err, "parsing manifest document"))
			}
			manifestFound = true

		case repositoriesName:
			var repositories map[string]map[string]string
			if err := json.NewDecoder(tarReader).Decode(&repositories); err != nil {
				return quill.ImageManifest{}, quill.NewFormatErr(errorspkg.Wrap(err, "parsing repositories document"))
			}
			repositoriesFound = true
		}
	}

	if !manifestFound {
		return quill.ImageManifest{}, quill.NewFormatErr(errorspkg.New("image manifest not found"))
	}
	if !repositoriesFound {
		return quill.ImageManifest{}, quill.NewFormatErr(errorspkg.New("repositories document not found"))
	}
	if len(manifest) != 1 {
		return quill.ImageManifest{}, quill.NewFormatErr(
			errorspkg.Errorf("expected exactly one manifest record, got %d", len(manifest)))
	}

	logger.Debug("manifest-parsed", lager.Data{
		"layers":   manifest[0].Layers,
		"repoTags": manifest[0].RepoTags,
	})

	return quill.ImageManifest{
		Layers:   manifest[0].Layers,
		RepoTags: manifest[0].RepoTags,
	}, nil
}

func (t *Tarball) StreamLayer(logger lager.Logger, layerID string) (io.ReadCloser, int64, error) {
	logger = logger.Session("streaming-layer", lager.Data{
		"imagePath": t.imagePath,
		"layerID":   layerID,
	})
	logger.Info("starting")
	defer logger.Info("ending")

	file, err := os.Open(t.imagePath)
	if err != nil {
		return nil, 0, errorspkg.Wrap(err, "opening image tarball")
	}

	tarReader := tar.NewReader(file)
	for {
		tarHeader, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = file.Close()
			return nil, 0, errorspkg.Wrap(err, "reading image tarball")
		}

		if filepath.Clean(tarHeader.Name) == filepath.Clean(layerID) {
			return &layerStream{reader: tarReader, file: file}, tarHeader.Size, nil
		}
	}

	_ = file.Close()
	return nil, 0, errorspkg.Errorf("layer `%s` not found in image", layerID)
}

func (t *Tarball) validateImage() error {
	stat, err := os.Stat(t.imagePath)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return errorspkg.New("directory provided instead of a tar file")
	}

	return nil
}

// layerStream reads a nested layer tarball; closing it closes the underlying
// archive file.
type layerStream struct {
	reader io.Reader
	file   *os.File
}

func (s *layerStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *layerStream) Close() error {
	return s.file.Close()
}
