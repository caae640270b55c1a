package loader

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// BaudRate is the fixed line rate for every target.
	BaudRate = 921600

	// ReadTimeout bounds a single read on the serial link.
	ReadTimeout = time.Millisecond

	// PollInterval is how often device presence is checked while waiting.
	PollInterval = time.Second

	// HandshakeWindow bounds the wait for the target's marker run.
	HandshakeWindow = 10 * time.Second

	// AckWindow bounds the wait for the ack frame after the size frame.
	AckWindow = 10 * time.Second
)

// config holds settings shared by the supervisor and the tools it drives.
type config struct {
	transport       Transport
	console         *Console
	logger          zerolog.Logger
	pollInterval    time.Duration
	handshakeWindow time.Duration
	ackWindow       time.Duration
	progress        ProgressFunc
}

func defaultConfig() config {
	return config{
		transport:       SerialTransport{BaudRate: BaudRate, ReadTimeout: ReadTimeout},
		console:         Stdio(),
		logger:          zerolog.Nop(),
		pollInterval:    PollInterval,
		handshakeWindow: HandshakeWindow,
		ackWindow:       AckWindow,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Supervisor, Push or Term.
type Option func(*config)

// WithTransport replaces the serial transport.
func WithTransport(t Transport) Option {
	return func(c *config) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithConsole sets the console used for boot output and the bridge.
// Supervisor and tool must share the same console.
func WithConsole(con *Console) Option {
	return func(c *config) {
		if con != nil {
			c.console = con
		}
	}
}

// WithLogger sets the status logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithPollInterval sets how often device presence is polled.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithHandshakeWindow sets the bound on the marker-run wait.
func WithHandshakeWindow(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.handshakeWindow = d
		}
	}
}

// WithAckWindow sets the bound on the ack wait.
func WithAckWindow(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ackWindow = d
		}
	}
}

// WithProgress sets a callback invoked after every chunk is written.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}
