package ipc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents a single engine session talking to the bot.
// Each session gets its own connection and agent; ID tags its log lines.
type Connection struct {
	tr       Transport
	handlers map[string]Handler
	ID       string
	log      *slog.Logger
}

func NewConnection(tr Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	id := uuid.NewString()
	return &Connection{
		tr:       tr,
		handlers: handlers,
		ID:       id,
		log:      slog.Default().With("session", id),
	}
}

// Logger returns the session-scoped logger.
func (c *Connection) Logger() *slog.Logger { return c.log }

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.tr.WriteEnvelope(env)
}

// ReadLoop blocks until the transport closes or errors. It owns the transport
// lifetime so callers don't need to track cleanup. Handler failures are
// reported to the peer as error messages and the loop keeps reading.
func (c *Connection) ReadLoop() {
	defer c.tr.Close()

	for {
		env, err := c.tr.ReadEnvelope()
		if err != nil {
			if isClosed(err) {
				c.log.Info("connection closed by peer")
			} else {
				c.log.Info("connection read ended", "error", err)
			}
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			c.log.Warn("no handler for message type", "type", env.Type)
			if err := c.Send(TypeError, ErrorMessage{Message: fmt.Sprintf("unknown message type %q", env.Type)}); err != nil {
				c.log.Error("failed to send error", "error", err)
				return
			}
			continue
		}

		resp, err := handler(env)
		if err != nil {
			c.log.Error("handler error", "type", env.Type, "error", err)
			if err := c.Send(TypeError, ErrorMessage{Message: err.Error()}); err != nil {
				c.log.Error("failed to send error", "error", err)
				return
			}
			continue
		}

		if resp != nil {
			if err := c.tr.WriteEnvelope(*resp); err != nil {
				c.log.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			c.log.Debug("sent response", "type", resp.Type)
		}
	}
}

// isClosed reports whether err just means the peer went away.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
