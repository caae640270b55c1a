package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/luhtfiimanal/go-serial-loader/loader"
	"github.com/stretchr/testify/require"
)

func TestProgressBar_Render(t *testing.T) {
	pb := newProgressBar(nil, "MP", 10)

	require.Equal(t, "[MP] Pushing 1.0 KiB [----------]   0.0%", pb.Render(loader.Progress{Total: 1024}))
	require.Contains(t, pb.Render(loader.Progress{Sent: 512, Total: 1024}), "[=====-----]  50.0%")
	require.Contains(t, pb.Render(loader.Progress{Sent: 1024, Total: 1024}), "[==========] 100.0%")
}

func TestProgressBar_UpdateEndsLineWhenDone(t *testing.T) {
	var out bytes.Buffer
	pb := newProgressBar(&out, "MP", 4)

	pb.Update(loader.Progress{Sent: 512, Total: 1024})
	require.False(t, strings.HasSuffix(out.String(), "\n"))

	pb.Update(loader.Progress{Sent: 1024, Total: 1024, Elapsed: 1500 * time.Millisecond})
	require.True(t, strings.HasSuffix(out.String(), "1.5s\n"))
}

func TestHumanBytes(t *testing.T) {
	require.Equal(t, "512 B", humanBytes(512))
	require.Equal(t, "6.0 KiB", humanBytes(6*1024))
	require.Equal(t, "2.5 MiB", humanBytes(5<<19))
}
