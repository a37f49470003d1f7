package metrics_test

import (
	"fmt"
	"time"

	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/cloudfoundry/sonde-go/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"code.cloudfoundry.org/quillfs/metrics"
	"code.cloudfoundry.org/quillfs/testhelpers"
)

var _ = Describe("Emitter", func() {
	Describe("NewEmitter", func() {
		Context("when the metron endpoint is not provided", func() {
			It("returns an error", func() {
				_, err := metrics.NewEmitter("")
				Expect(err).To(MatchError(ContainSubstring("destination variable not set")))
			})
		})
	})

	Describe("TryEmitDurationFrom", func() {
		var (
			fakeMetronPort   uint16
			fakeMetron       *testhelpers.FakeMetron
			fakeMetronClosed chan struct{}
			emitter          *metrics.Emitter
			logger           *lagertest.TestLogger
		)

		BeforeEach(func() {
			fakeMetronPort = uint16(5000 + GinkgoParallelProcess())

			fakeMetron = testhelpers.NewFakeMetron(fakeMetronPort)
			Expect(fakeMetron.Listen()).To(Succeed())

			var err error
			emitter, err = metrics.NewEmitter(
				fmt.Sprintf("127.0.0.1:%d", fakeMetronPort),
			)
			Expect(err).NotTo(HaveOccurred())

			logger = lagertest.NewTestLogger("emitter")

			fakeMetronClosed = make(chan struct{})
			go func() {
				defer GinkgoRecover()
				Expect(fakeMetron.Run()).To(Succeed())
				close(fakeMetronClosed)
			}()
		})

		AfterEach(func() {
			Expect(fakeMetron.Stop()).To(Succeed())
			Eventually(fakeMetronClosed).Should(BeClosed())
		})

		It("emits the elapsed duration as a value metric", func() {
			from := time.Now().Add(-time.Second)
			emitter.TryEmitDurationFrom(logger, "ExtractionTime", from)

			var extractionMetrics []events.ValueMetric
			Eventually(func() []events.ValueMetric {
				extractionMetrics = fakeMetron.ValueMetricsFor("ExtractionTime")
				return extractionMetrics
			}).Should(HaveLen(1))

			Expect(*extractionMetrics[0].Name).To(Equal("ExtractionTime"))
			Expect(*extractionMetrics[0].Unit).To(Equal("nanos"))
			Expect(*extractionMetrics[0].Value).To(BeNumerically(">=", float64(time.Second)))
		})
	})
})
