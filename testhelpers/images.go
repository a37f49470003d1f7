package testhelpers

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"os"
	"time"
)

// TarEntry describes one node inside a layer tarball. Leave Typeflag zero for
// a regular file.
type TarEntry struct {
	Name     string
	Typeflag byte
	Contents string
	Linkname string
	Mode     int64
	Uid      int
	Gid      int
	ModTime  time.Time
}

// Layer is a named filesystem diff: the layer id doubles as the entry name of
// the nested tarball inside the image archive.
type Layer struct {
	ID      string
	Entries []TarEntry
}

type manifestRecord struct {
	Config   string   `json:"Config"`
	Layers   []string `json:"Layers"`
	RepoTags []string `json:"RepoTags"`
}

// ImageArchive builds docker-save style image tarballs for tests.
type ImageArchive struct {
	Layers            []Layer
	RepoTags          []string
	ManifestRecords   int
	OmitManifest      bool
	OmitRepositories  bool
	CorruptManifest   bool
	CorruptRepository bool
}

func NewImageArchive(layers ...Layer) *ImageArchive {
	return &ImageArchive{
		Layers:          layers,
		RepoTags:        []string{"quillfs/test:latest"},
		ManifestRecords: 1,
	}
}

// Write serializes the archive to imagePath.
func (a *ImageArchive) Write(imagePath string) error {
	file, err := os.Create(imagePath)
	if err != nil {
		return err
	}
	defer file.Close()

	tarWriter := tar.NewWriter(file)
	defer tarWriter.Close()

	if !a.OmitManifest {
		if err := a.writeManifest(tarWriter); err != nil {
			return err
		}
	}
	if !a.OmitRepositories {
		if err := a.writeRepositories(tarWriter); err != nil {
			return err
		}
	}

	for _, layer := range a.Layers {
		layerBytes, err := LayerTar(layer.Entries...)
		if err != nil {
			return err
		}
		if err := writeFileEntry(tarWriter, layer.ID, layerBytes); err != nil {
			return err
		}
	}

	return nil
}

func (a *ImageArchive) writeManifest(tarWriter *tar.Writer) error {
	if a.CorruptManifest {
		return writeFileEntry(tarWriter, "manifest.json", []byte("not json at all"))
	}

	layerIDs := []string{}
	for _, layer := range a.Layers {
		layerIDs = append(layerIDs, layer.ID)
	}

	manifest := []manifestRecord{}
	for i := 0; i < a.ManifestRecords; i++ {
		manifest = append(manifest, manifestRecord{
			Config:   "config.json",
			Layers:   layerIDs,
			RepoTags: a.RepoTags,
		})
	}

	contents, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	return writeFileEntry(tarWriter, "manifest.json", contents)
}

func (a *ImageArchive) writeRepositories(tarWriter *tar.Writer) error {
	if a.CorruptRepository {
		return writeFileEntry(tarWriter, "repositories", []byte("{{{{"))
	}

	repositories := map[string]map[string]string{}
	for _, tag := range a.RepoTags {
		repositories[tag] = map[string]string{"latest": "deadbeef"}
	}

	contents, err := json.Marshal(repositories)
	if err != nil {
		return err
	}
	return writeFileEntry(tarWriter, "repositories", contents)
}

// LayerTar serializes a list of entries into a layer tarball.
func LayerTar(entries ...TarEntry) ([]byte, error) {
	buffer := &bytes.Buffer{}
	tarWriter := tar.NewWriter(buffer)

	for _, entry := range entries {
		header := &tar.Header{
			Name:     entry.Name,
			Typeflag: entry.Typeflag,
			Linkname: entry.Linkname,
			Mode:     entry.Mode,
			Uid:      entry.Uid,
			Gid:      entry.Gid,
			ModTime:  entry.ModTime,
		}
		if header.Typeflag == 0 {
			header.Typeflag = tar.TypeReg
		}
		if header.Mode == 0 {
			if header.Typeflag == tar.TypeDir {
				header.Mode = 0755
			} else {
				header.Mode = 0644
			}
		}
		if header.Typeflag == tar.TypeReg {
			header.Size = int64(len(entry.Contents))
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			return nil, err
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tarWriter.Write([]byte(entry.Contents)); err != nil {
				return nil, err
			}
		}
	}

	if err := tarWriter.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeFileEntry(tarWriter *tar.Writer, name string, contents []byte) error {
	header := &tar.Header{
		Name:     name,
		Typeflag: tar.TypeReg,
		Mode:     0644,
		Size:     int64(len(contents)),
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}
	_, err := tarWriter.Write(contents)
	return err
}
