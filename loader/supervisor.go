package loader

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Supervisor owns the serial link lifecycle for a Tool: wait for the
// device, open it, run the tool, and on a retryable failure close the link
// and start over.
//
//	Idle -> WaitForDevice -> Open -> Exec -> Idle            (success)
//	                                      -> WaitForDevice   (connection, protocol, timeout)
//	                                      -> Terminated      (anything else)
//
// An open failure is fatal and is not retried.
type Supervisor struct {
	cfg config
}

// NewSupervisor creates a Supervisor. The console option must match the
// one given to the tool so the terminal can always be restored.
func NewSupervisor(opts ...Option) *Supervisor {
	return &Supervisor{cfg: newConfig(opts)}
}

// Run drives t until it finishes, fails fatally, or ctx is cancelled. The
// console leaves raw mode on every exit path, panics included.
func (s *Supervisor) Run(ctx context.Context, t Tool) (err error) {
	logger := toolLogger(s.cfg.logger, t.Name())
	defer s.cfg.console.Restore()

	for {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = s.open(ctx, t, logger); err != nil {
			break
		}
		err = t.Exec(ctx)
		if err == nil || !Retryable(err) {
			break
		}
		s.reset(t)
		logger.Warn().Err(err).Str("kind", Classify(err).String()).Msg(reconnectHint(t))
	}

	s.reset(t)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info().Msg("Interrupted")
	default:
		logger.Error().Err(err).Str("kind", Classify(err).String()).Msg("Unexpected Error")
	}
	logger.Info().Msg("Bye")
	return err
}

// WaitForDevice blocks, polling at the configured interval, until the
// tool's device is present.
func (s *Supervisor) WaitForDevice(ctx context.Context, t Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg.transport.Exists(t.Device()) {
		return nil
	}
	logger := toolLogger(s.cfg.logger, t.Name())
	logger.Info().Str("device", t.Device()).Msg("Waiting for device")

	ticker := time.NewTicker(s.cfg.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.cfg.transport.Exists(t.Device()) {
				return nil
			}
		}
	}
}

func (s *Supervisor) open(ctx context.Context, t Tool, logger zerolog.Logger) error {
	if err := s.WaitForDevice(ctx, t); err != nil {
		return err
	}
	link, err := s.cfg.transport.Open(t.Device())
	if err != nil {
		return &OpenError{Device: t.Device(), Err: err}
	}
	t.SetLink(link)
	logger.Info().Str("device", t.Device()).Msg("Connected")
	return nil
}

// reset drops the link and leaves raw mode.
func (s *Supervisor) reset(t Tool) {
	if l := t.Link(); l != nil {
		l.Close()
		t.SetLink(nil)
	}
	s.cfg.console.Restore()
}
