package quill_test

import (
	"archive/tar"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"code.cloudfoundry.org/quillfs/fetcher/tarball"
	"code.cloudfoundry.org/quillfs/hooks"
	"code.cloudfoundry.org/quillfs/metrics"
	"code.cloudfoundry.org/quillfs/quill"
	"code.cloudfoundry.org/quillfs/quill/quillfakes"
	"code.cloudfoundry.org/quillfs/testhelpers"
	"code.cloudfoundry.org/quillfs/unpacker"
)

var _ = Describe("extracting a full image", func() {
	var (
		workDir         string
		imagePath       string
		destinationPath string
		logger          *lagertest.TestLogger
	)

	BeforeEach(func() {
		workDir = GinkgoT().TempDir()
		imagePath = filepath.Join(workDir, "image.tar")
		destinationPath = filepath.Join(workDir, "rootfs")
		logger = lagertest.NewTestLogger("extraction")
	})

	newExtractor := func(extractorHooks ...quill.Hook) *quill.Extractor {
		imageSource := tarball.NewTarball(imagePath)
		privilegeChecker := new(quillfakes.FakePrivilegeChecker)

		return quill.NewExtractor(
			imageSource,
			unpacker.NewTarUnpacker(imageSource),
			privilegeChecker,
			metrics.NewNoopEmitter(),
			extractorHooks...,
		)
	}

	It("merges the layers onto the destination", func() {
		imageArchive := testhelpers.NewImageArchive(
			testhelpers.Layer{
				ID: "base/layer.tar",
				Entries: []testhelpers.TarEntry{
					{Name: "./bin", Typeflag: tar.TypeDir},
					{Name: "./bin/sh", Contents: "shell v1"},
					{Name: "./secret", Contents: "do not ship"},
				},
			},
			testhelpers.Layer{
				ID: "top/layer.tar",
				Entries: []testhelpers.TarEntry{
					{Name: "./bin/sh", Contents: "shell v2"},
					{Name: "./.wh.secret"},
				},
			},
		)
		Expect(imageArchive.Write(imagePath)).To(Succeed())

		Expect(newExtractor().Extract(logger, quill.ExtractSpec{
			DestinationPath: destinationPath,
		})).To(Succeed())

		shell, err := os.ReadFile(filepath.Join(destinationPath, "bin", "sh"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(shell)).To(Equal("shell v2"))

		Expect(filepath.Join(destinationPath, "secret")).NotTo(BeAnExistingFile())
	})

	It("runs the post-processing hooks against the merged tree", func() {
		imageArchive := testhelpers.NewImageArchive(
			testhelpers.Layer{
				ID: "base/layer.tar",
				Entries: []testhelpers.TarEntry{
					{Name: "./etc", Typeflag: tar.TypeDir},
					{Name: "./etc/hostname", Contents: "from-image\n"},
				},
			},
		)
		Expect(imageArchive.Write(imagePath)).To(Succeed())

		extractor := newExtractor(
			hooks.NewHostname("garden-1234"),
			hooks.NewResolvConf("/run/resolvconf/resolv.conf"),
		)

		Expect(extractor.Extract(logger, quill.ExtractSpec{
			DestinationPath: destinationPath,
		})).To(Succeed())

		hostname, err := os.ReadFile(filepath.Join(destinationPath, "etc", "hostname"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(hostname)).To(Equal("garden-1234\n"))

		linkTarget, err := os.Readlink(filepath.Join(destinationPath, "etc", "resolv.conf"))
		Expect(err).NotTo(HaveOccurred())
		Expect(linkTarget).To(Equal("/run/resolvconf/resolv.conf"))
	})

	It("surfaces format problems from the image archive", func() {
		imageArchive := testhelpers.NewImageArchive()
		imageArchive.OmitManifest = true
		Expect(imageArchive.Write(imagePath)).To(Succeed())

		err := newExtractor().Extract(logger, quill.ExtractSpec{
			DestinationPath: destinationPath,
		})
		Expect(err).To(testhelpers.BeErrorType(quill.FormatErr{}))
	})
})
