package ipc

import "io"

//go:generate go tool mockgen -destination=./mocks/transport_mock.go -package=mocks . Transport

// Transport moves whole envelopes. A Connection reads and writes from a
// single goroutine, so implementations need not be safe for concurrent use.
type Transport interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(env Envelope) error
	Close() error
}

// StreamTransport frames envelopes over a byte stream such as a unix
// socket.
type StreamTransport struct {
	rwc io.ReadWriteCloser
}

func NewStreamTransport(rwc io.ReadWriteCloser) *StreamTransport {
	return &StreamTransport{rwc: rwc}
}

func (t *StreamTransport) ReadEnvelope() (Envelope, error)  { return ReadEnvelope(t.rwc) }
func (t *StreamTransport) WriteEnvelope(env Envelope) error { return WriteEnvelope(t.rwc, env) }
func (t *StreamTransport) Close() error                     { return t.rwc.Close() }
