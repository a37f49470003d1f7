package testhelpers

import (
	"fmt"
	"net"
	"sync"

	"github.com/cloudfoundry/dropsonde/dropsonde_unmarshaller"
	"github.com/cloudfoundry/sonde-go/events"
)

// FakeMetron is a UDP listener that collects the value metrics the emitter
// sends, keyed by metric name.
type FakeMetron struct {
	port         uint16
	connection   net.PacketConn
	unmarshaller *dropsonde_unmarshaller.DropsondeUnmarshaller
	valueMetrics map[string][]events.ValueMetric
	stopped      bool
	mtx          sync.RWMutex
}

func NewFakeMetron(port uint16) *FakeMetron {
	return &FakeMetron{
		port:         port,
		unmarshaller: dropsonde_unmarshaller.NewDropsondeUnmarshaller(),
		valueMetrics: make(map[string][]events.ValueMetric),
	}
}

func (m *FakeMetron) Listen() error {
	addr := fmt.Sprintf("localhost:%d", m.port)
	connection, err := net.ListenPacket("udp4", addr)
	if err != nil {
		return err
	}
	m.connection = connection

	return nil
}

func (m *FakeMetron) Run() error {
	// max theoretical UDP datagram size
	readBuffer := make([]byte, 65535)
	for {
		readCount, _, err := m.connection.ReadFrom(readBuffer)
		if err != nil && m.isStopped() {
			return nil
		}
		if err != nil {
			return err
		}

		message := make([]byte, readCount)
		copy(message, readBuffer[:readCount])

		envelope, err := m.unmarshaller.UnmarshallMessage(message)
		if err != nil {
			return err
		}

		if *envelope.EventType == events.Envelope_ValueMetric {
			m.mtx.Lock()
			metric := *envelope.ValueMetric
			m.valueMetrics[*metric.Name] = append(m.valueMetrics[*metric.Name], metric)
			m.mtx.Unlock()
		}
	}
}

func (m *FakeMetron) isStopped() bool {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.stopped
}

func (m *FakeMetron) Stop() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.stopped = true

	return m.connection.Close()
}

func (m *FakeMetron) ValueMetricsFor(key string) []events.ValueMetric {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	metrics, ok := m.valueMetrics[key]
	if !ok {
		return []events.ValueMetric{}
	}

	return metrics
}
