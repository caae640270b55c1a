package loader

import "context"

// Term bridges the console to the target without pushing anything.
type Term struct {
	device string
	link   Link
	cfg    config
}

// NewTerm creates the terminal-only tool.
func NewTerm(device string, opts ...Option) *Term {
	return &Term{device: device, cfg: newConfig(opts)}
}

func (t *Term) Device() string    { return t.device }
func (t *Term) Name() string      { return "MT" }
func (t *Term) Link() Link        { return t.link }
func (t *Term) SetLink(link Link) { t.link = link }

// Exec runs the bridge.
func (t *Term) Exec(context.Context) error {
	return Bridge(t.link, t.cfg.console)
}
