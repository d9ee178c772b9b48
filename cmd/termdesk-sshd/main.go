// Command termdesk-sshd serves an independent desktop to each SSH
// session. The remote end is the terminal: input arrives over the
// channel, frames flush back over it, and window-change requests feed
// the resize path.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/lixenwraith/termdesk/apps"
	"github.com/lixenwraith/termdesk/config"
	"github.com/lixenwraith/termdesk/core"
	"github.com/lixenwraith/termdesk/desktop"
	"github.com/lixenwraith/termdesk/terminal"
)

var (
	addrFlag    = flag.String("addr", ":2222", "Listen address")
	hostKeyFlag = flag.String("hostkey", "termdesk_host_key", "Host key path; generated when missing")
	colorFlag   = flag.String("color", "truecolor", "Color mode for sessions: truecolor, 256")
	configFlag  = flag.String("config", "", "Config file path")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	// The session channel carries no audio; the bell always flashes
	cfg.Bell.Audio = false

	colorMode, ok := terminal.ParseColorMode(*colorFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown color mode %q\n", *colorFlag)
		os.Exit(1)
	}

	apps.Register()

	signer, err := loadOrCreateHostKey(*hostKeyFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Host key: %v\n", err)
		os.Exit(1)
	}

	srv := &ssh.Server{
		Addr:        *addrFlag,
		Handler:     sessionHandler(cfg, colorMode),
		HostSigners: []ssh.Signer{signer},
	}

	fmt.Fprintf(os.Stderr, "termdesk-sshd listening on %s\n", *addrFlag)
	if err := srv.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// sessionHandler builds the per-session desktop. Each session gets its
// own terminal, op queue, and window set; nothing is shared between
// sessions except the registered app factories.
func sessionHandler(cfg config.Config, colorMode terminal.ColorMode) ssh.Handler {
	strategy, _ := terminal.ParseDiffStrategy(cfg.DiffStrategy)
	mouseMode := terminal.MouseModeNone
	if cfg.MouseEnabled {
		mouseMode = terminal.MouseModeClick | terminal.MouseModeDrag
	}

	return func(s ssh.Session) {
		pty, winCh, isPty := s.Pty()
		if !isPty {
			io.WriteString(s, "termdesk requires a pty; connect with ssh -t\r\n")
			s.Exit(1)
			return
		}

		backend := terminal.NewSessionBackend(s, pty.Window.Width, pty.Window.Height)
		svc := terminal.NewSessionService(backend)
		if err := svc.Init(colorMode, strategy, mouseMode); err != nil {
			fmt.Fprintf(os.Stderr, "session %s: %v\n", s.RemoteAddr(), err)
			s.Exit(1)
			return
		}
		if err := svc.Start(); err != nil {
			svc.Stop()
			s.Exit(1)
			return
		}
		defer svc.Stop()

		core.Go(func() {
			for win := range winCh {
				backend.Resize(win.Width, win.Height)
			}
		})

		d := desktop.New(svc.Terminal(), nil, cfg)
		d.SetDefaultApp("notes")
		d.Spawn("clock")
		d.Spawn("notes")

		if err := d.Run(s.Context(), svc.Events()); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "session %s: %v\n", s.RemoteAddr(), err)
		}
	}
}

// loadOrCreateHostKey reads an OpenSSH private key, generating and
// persisting an ed25519 key on first run
func loadOrCreateHostKey(path string) (ssh.Signer, error) {
	if b, err := os.ReadFile(path); err == nil {
		return gossh.ParsePrivateKey(b)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	block, err := gossh.MarshalPrivateKey(priv, "termdesk host key")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		return nil, err
	}
	return gossh.NewSignerFromSigner(priv)
}
