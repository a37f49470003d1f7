package fetcher_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"code.cloudfoundry.org/quillfs/fetcher"
	"code.cloudfoundry.org/quillfs/fetcher/fetcherfakes"
)

var _ = Describe("CachedStreamer", func() {
	var (
		fakeLayerStreamer *fetcherfakes.FakeLayerStreamer
		cachePath         string
		cachedStreamer    *fetcher.CachedStreamer
		logger            *lagertest.TestLogger
	)

	BeforeEach(func() {
		cachePath = GinkgoT().TempDir()
		logger = lagertest.NewTestLogger("cached-streamer")

		fakeLayerStreamer = new(fetcherfakes.FakeLayerStreamer)
		fakeLayerStreamer.StreamLayerStub = func(_ lager.Logger, _ string) (io.ReadCloser, int64, error) {
			return io.NopCloser(bytes.NewReader([]byte("layer contents"))), 14, nil
		}

		cachedStreamer = fetcher.NewCachedStreamer(cachePath, fakeLayerStreamer)
	})

	It("streams the layer from the inner streamer", func() {
		stream, size, err := cachedStreamer.StreamLayer(logger, "layer-1/layer.tar")
		Expect(err).NotTo(HaveOccurred())
		defer stream.Close()

		contents, err := io.ReadAll(stream)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(contents)).To(Equal("layer contents"))
		Expect(size).To(Equal(int64(14)))
	})

	It("only hits the inner streamer once per layer", func() {
		for i := 0; i < 3; i++ {
			stream, _, err := cachedStreamer.StreamLayer(logger, "layer-1/layer.tar")
			Expect(err).NotTo(HaveOccurred())

			contents, err := io.ReadAll(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("layer contents"))
			Expect(stream.Close()).To(Succeed())
		}

		Expect(fakeLayerStreamer.StreamLayerCallCount()).To(Equal(1))
	})

	It("caches layers independently", func() {
		_, _, err := cachedStreamer.StreamLayer(logger, "layer-1/layer.tar")
		Expect(err).NotTo(HaveOccurred())
		_, _, err = cachedStreamer.StreamLayer(logger, "layer-2/layer.tar")
		Expect(err).NotTo(HaveOccurred())

		Expect(fakeLayerStreamer.StreamLayerCallCount()).To(Equal(2))

		entries, err := os.ReadDir(cachePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
	})

	It("flattens the layer id into a single cache file name", func() {
		_, _, err := cachedStreamer.StreamLayer(logger, "sha256:cafe/layer.tar")
		Expect(err).NotTo(HaveOccurred())

		Expect(filepath.Join(cachePath, "sha256-cafe-layer.tar")).To(BeAnExistingFile())
	})

	Context("when the inner streamer fails", func() {
		BeforeEach(func() {
			fakeLayerStreamer.StreamLayerStub = nil
			fakeLayerStreamer.StreamLayerReturns(nil, 0, errors.New("no such layer"))
		})

		It("returns the error", func() {
			_, _, err := cachedStreamer.StreamLayer(logger, "layer-1/layer.tar")
			Expect(err).To(MatchError(ContainSubstring("no such layer")))
		})
	})

	Context("when the cache directory does not exist", func() {
		It("returns an error", func() {
			brokenStreamer := fetcher.NewCachedStreamer(filepath.Join(cachePath, "missing"), fakeLayerStreamer)
			_, _, err := brokenStreamer.StreamLayer(logger, "layer-1/layer.tar")
			Expect(err).To(MatchError(ContainSubstring("caching layer")))
		})
	})
})
