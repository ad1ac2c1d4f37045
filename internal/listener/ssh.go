package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener serves game sessions over SSH. Any user name is accepted
// without authentication; each shell channel is one session.
type SshListener struct {
	addr   string
	cm     *ConnectionManager
	config *ssh.ServerConfig
}

func NewSshListener(addr string, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	config := &ssh.ServerConfig{NoClientAuth: true}
	config.AddHostKey(hostKey)

	return &SshListener{
		addr:   addr,
		cm:     cm,
		config: config,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listening for ssh on %s: %w", l.addr, err)
	}
	slog.InfoContext(ctx, "listening for ssh", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	// Sessions outlive ctx only until their connection is closed below.
	sessCtx, endSessions := context.WithCancel(context.Background())
	var sessions sync.WaitGroup
	defer func() {
		endSessions()
		sessions.Wait()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.WarnContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		sessions.Go(func() {
			l.serve(sessCtx, conn)
		})
	}
}

func (l *SshListener) serve(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()
	remote := conn.RemoteAddr().String()

	sc, chans, reqs, err := ssh.NewServerConn(conn, l.config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake failed", "remote", remote, "error", err)
		return
	}
	defer func() { _ = sc.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = sc.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	for nc := range chans {
		if nc.ChannelType() != "session" {
			_ = nc.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}

		ch, chReqs, err := nc.Accept()
		if err != nil {
			slog.WarnContext(ctx, "accepting ssh channel", "remote", remote, "error", err)
			continue
		}

		select {
		case <-awaitShell(chReqs):
			slog.InfoContext(ctx, "ssh session starting", "remote", remote, "user", sc.User())
			l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
		case <-ctx.Done():
		}
		_ = ch.Close()
	}
}

// awaitShell answers channel requests and closes the returned channel once
// the client asks for a shell. Clients hold back input until that reply.
// PTYs are refused so the client keeps local echo and line editing.
func awaitShell(reqs <-chan *ssh.Request) <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		var once sync.Once
		for req := range reqs {
			ok := req.Type == "shell"
			_ = req.Reply(ok, nil)
			if ok {
				once.Do(func() { close(ready) })
			}
		}
	}()
	return ready
}
