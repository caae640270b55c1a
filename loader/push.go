package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/luhtfiimanal/go-serial-loader/protocol"
	"github.com/rs/zerolog"
)

const handshakeBufSize = 4096

// Push waits for the target to request an image, sends it, and then
// bridges the console to the target.
type Push struct {
	device string
	image  string
	link   Link
	cfg    config
	logger zerolog.Logger
}

// NewPush creates the loader tool for the image at path image.
func NewPush(device, image string, opts ...Option) *Push {
	cfg := newConfig(opts)
	return &Push{
		device: device,
		image:  image,
		cfg:    cfg,
		logger: toolLogger(cfg.logger, "MP"),
	}
}

func (p *Push) Device() string    { return p.device }
func (p *Push) Name() string      { return "MP" }
func (p *Push) Link() Link        { return p.link }
func (p *Push) SetLink(link Link) { p.link = link }

// ReconnectHint asks for a power cycle: the target only requests an image
// right after reset.
func (p *Push) ReconnectHint() string {
	return "Connection or protocol Error: Remove power and USB serial. Reinsert serial first, then power"
}

// Exec runs handshake, size negotiation and transfer, then the bridge.
// Every call starts from the handshake; nothing is resumed.
func (p *Push) Exec(ctx context.Context) error {
	if err := p.WaitForRequest(ctx); err != nil {
		return err
	}

	session, err := OpenSession(p.image)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := p.SendSize(session.Size); err != nil {
		return err
	}
	if err := p.SendImage(ctx, session); err != nil {
		return err
	}
	return Bridge(p.link, p.cfg.console)
}

// WaitForRequest reads boot output until the target sends MarkerRun
// consecutive markers, echoing everything else to the console. It gives
// up with ErrTimeout once the handshake window has passed, or with ctx's
// error once ctx is done.
func (p *Push) WaitForRequest(ctx context.Context) error {
	link := p.link
	if link == nil {
		return ErrNoLink
	}
	p.logger.Info().Msg("Please power the target now")

	var hs protocol.Handshake
	buf := make([]byte, handshakeBufSize)
	return Bounded(p.cfg.handshakeWindow, func(w *Window) error {
		for w.Live() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n, err := ReadLink(link, buf)
			if err != nil {
				if !errors.Is(err, ErrConnection) {
					err = fmt.Errorf("%w: %v", ErrConnection, err)
				}
				return fmt.Errorf("wait for request: %w", err)
			}
			done, err := hs.Feed(buf[:n], p.cfg.console.Out)
			if err != nil {
				return fmt.Errorf("echo boot output: %w", err)
			}
			if done {
				return nil
			}
		}
		return nil
	})
}

// SendSize writes the size frame and waits for the ack. A short, failed
// or wrong ack is ErrProtocol.
func (p *Push) SendSize(size int64) error {
	link := p.link
	if link == nil {
		return ErrNoLink
	}

	frame := protocol.EncodeSize(size)
	if _, err := link.Write(frame[:]); err != nil {
		return fmt.Errorf("%w: write size frame: %v", ErrConnection, err)
	}

	var ack [protocol.AckLen]byte
	var n int
	err := Bounded(p.cfg.ackWindow, func(w *Window) error {
		var err error
		n, err = ReadFull(w, link, ack[:])
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: read ack (%d of %d bytes): %v", ErrProtocol, n, protocol.AckLen, err)
	}
	if err := protocol.CheckAck(ack[:n]); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return nil
}

// SendImage writes the image in chunks of at most protocol.ChunkSize
// bytes with no per-chunk ack. A write failure aborts the transfer.
func (p *Push) SendImage(ctx context.Context, s *Session) error {
	link := p.link
	if link == nil {
		return ErrNoLink
	}

	counter := newProgressCounter(s.Size, p.cfg.progress)
	chunk := make([]byte, protocol.ChunkSize)
	for counter.sent < s.Size {
		if err := ctx.Err(); err != nil {
			return err
		}
		want := protocol.ChunkLen(s.Size, counter.sent)
		n, err := io.ReadFull(s, chunk[:want])
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("read image at %d of %d: %w", counter.sent+int64(n), s.Size, err)
		}
		if _, err := link.Write(chunk[:n]); err != nil {
			return fmt.Errorf("%w: write chunk at %d: %v", ErrConnection, counter.sent, err)
		}
		counter.add(n)
	}

	p.logger.Info().Int64("bytes", counter.sent).Msg("send finish!")
	return nil
}
