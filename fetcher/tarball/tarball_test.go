package tarball_test

import (
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"code.cloudfoundry.org/quillfs/fetcher/tarball"
	"code.cloudfoundry.org/quillfs/quill"
	"code.cloudfoundry.org/quillfs/testhelpers"
)

var _ = Describe("Tarball", func() {
	var (
		imagePath    string
		imageArchive *testhelpers.ImageArchive
		imageSource  *tarball.Tarball
		logger       *lagertest.TestLogger
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("tarball")
		imagePath = filepath.Join(GinkgoT().TempDir(), "image.tar")

		imageArchive = testhelpers.NewImageArchive(
			testhelpers.Layer{
				ID: "layer-1/layer.tar",
				Entries: []testhelpers.TarEntry{
					{Name: "./hello.txt", Contents: "hello world"},
				},
			},
			testhelpers.Layer{
				ID: "layer-2/layer.tar",
				Entries: []testhelpers.TarEntry{
					{Name: "./bye.txt", Contents: "bye"},
				},
			},
		)
		imageArchive.RepoTags = []string{"busybox:latest", "busybox:1.36"}
	})

	JustBeforeEach(func() {
		Expect(imageArchive.Write(imagePath)).To(Succeed())
		imageSource = tarball.NewTarball(imagePath)
	})

	Describe("Manifest", func() {
		It("returns the ordered layer list and the repo tags", func() {
			manifest, err := imageSource.Manifest(logger)
			Expect(err).NotTo(HaveOccurred())

			Expect(manifest.Layers).To(Equal([]string{"layer-1/layer.tar", "layer-2/layer.tar"}))
			Expect(manifest.RepoTags).To(Equal([]string{"busybox:latest", "busybox:1.36"}))
		})

		Context("when the image path is a directory", func() {
			It("returns an error", func() {
				dirSource := tarball.NewTarball(filepath.Dir(imagePath))
				_, err := dirSource.Manifest(logger)
				Expect(err).To(MatchError(ContainSubstring("directory provided instead of a tar file")))
			})
		})

		Context("when the image path does not exist", func() {
			It("returns an error", func() {
				missingSource := tarball.NewTarball(filepath.Join(filepath.Dir(imagePath), "nope.tar"))
				_, err := missingSource.Manifest(logger)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the archive has no manifest document", func() {
			BeforeEach(func() {
				imageArchive.OmitManifest = true
			})

			It("returns a FormatErr", func() {
				_, err := imageSource.Manifest(logger)
				Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
				Expect(err).To(MatchError(ContainSubstring("image manifest not found")))
			})
		})

		Context("when the archive has no repositories document", func() {
			BeforeEach(func() {
				imageArchive.OmitRepositories = true
			})

			It("returns a FormatErr", func() {
				_, err := imageSource.Manifest(logger)
				Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
				Expect(err).To(MatchError(ContainSubstring("repositories document not found")))
			})
		})

		Context("when the manifest document is not valid JSON", func() {
			BeforeEach(func() {
				imageArchive.CorruptManifest = true
			})

			It("returns a FormatErr", func() {
				_, err := imageSource.Manifest(logger)
				Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
			})
		})

		Context("when the repositories document is not valid JSON", func() {
			BeforeEach(func() {
				imageArchive.CorruptRepository = true
			})

			It("returns a FormatErr", func() {
				_, err := imageSource.Manifest(logger)
				Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
			})
		})

		Context("when the manifest holds more than one record", func() {
			BeforeEach(func() {
				imageArchive.ManifestRecords = 2
			})

			It("returns a FormatErr", func() {
				_, err := imageSource.Manifest(logger)
				Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
				Expect(err).To(MatchError(ContainSubstring("expected exactly one manifest record, got 2")))
			})
		})

		Context("when the manifest holds no records", func() {
			BeforeEach(func() {
				imageArchive.ManifestRecords = 0
			})

			It("returns a FormatErr", func() {
				_, err := imageSource.Manifest(logger)
				Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
				Expect(err).To(MatchError(ContainSubstring("expected exactly one manifest record, got 0")))
			})
		})
	})

	Describe("StreamLayer", func() {
		It("streams the nested layer tarball", func() {
			stream, size, err := imageSource.StreamLayer(logger, "layer-1/layer.tar")
			Expect(err).NotTo(HaveOccurred())
			defer stream.Close()

			Expect(size).To(BeNumerically(">", 0))

			contents, err := io.ReadAll(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(int64(len(contents))).To(Equal(size))
			Expect(string(contents)).To(ContainSubstring("hello world"))
		})

		It("serves the same layer more than once", func() {
			first, _, err := imageSource.StreamLayer(logger, "layer-2/layer.tar")
			Expect(err).NotTo(HaveOccurred())
			firstContents, err := io.ReadAll(first)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Close()).To(Succeed())

			second, _, err := imageSource.StreamLayer(logger, "layer-2/layer.tar")
			Expect(err).NotTo(HaveOccurred())
			secondContents, err := io.ReadAll(second)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Close()).To(Succeed())

			Expect(secondContents).To(Equal(firstContents))
		})

		Context("when the layer is not in the archive", func() {
			It("returns an error", func() {
				_, _, err := imageSource.StreamLayer(logger, "layer-42/layer.tar")
				Expect(err).To(MatchError(ContainSubstring("layer `layer-42/layer.tar` not found in image")))
			})
		})

		Context("when the image path does not exist", func() {
			It("returns an error", func() {
				Expect(os.Remove(imagePath)).To(Succeed())
				_, _, err := imageSource.StreamLayer(logger, "layer-1/layer.tar")
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
