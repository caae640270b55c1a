package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/luhtfiimanal/go-serial-loader/loader"
)

// progressBar renders push progress on a single terminal line.
type progressBar struct {
	out   io.Writer
	name  string
	width int
}

func newProgressBar(out io.Writer, name string, width int) *progressBar {
	return &progressBar{out: out, name: name, width: width}
}

func (pb *progressBar) Render(p loader.Progress) string {
	filled := int(float64(pb.width) * p.Percentage() / 100.0)
	if filled > pb.width {
		filled = pb.width
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", pb.width-filled)
	return fmt.Sprintf("[%s] Pushing %s [%s] %5.1f%%", pb.name, humanBytes(p.Total), bar, p.Percentage())
}

func (pb *progressBar) Update(p loader.Progress) {
	fmt.Fprintf(pb.out, "\r%s", pb.Render(p))
	if p.Done() {
		fmt.Fprintf(pb.out, " %s\n", p.Elapsed.Round(time.Millisecond))
	}
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
