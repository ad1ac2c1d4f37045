package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves game sessions over telnet.
type TelnetListener struct {
	addr string
	cm   *ConnectionManager
}

func NewTelnetListener(addr string, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		addr: addr,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	sessCtx, endSessions := context.WithCancel(context.Background())
	h := &telnetSessions{cm: l.cm, ctx: sessCtx}

	svr := telnet.NewServer(l.addr, h)
	slog.InfoContext(ctx, "listening for telnet", "addr", l.addr)

	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		endSessions()
		h.wg.Wait()
	})
	defer stop()

	err := svr.ListenAndServe()
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("telnet address %s is already in use", l.addr)
	}
	if err != nil {
		return fmt.Errorf("serving telnet on %s: %w", l.addr, err)
	}
	return nil
}

// telnetSessions runs one game session per telnet connection. Every session
// shares ctx so shutdown ends them together.
type telnetSessions struct {
	cm  *ConnectionManager
	ctx context.Context
	wg  sync.WaitGroup
}

func (h *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()

	// A session blocked on input only notices shutdown once its
	// connection is closed.
	hangup := context.AfterFunc(h.ctx, func() { _ = conn.Close() })

	h.cm.AcceptConnection(h.ctx, newCRLFReadWriter(conn))

	if hangup() {
		if err := conn.Close(); err != nil {
			slog.WarnContext(h.ctx, "closing telnet connection", "error", err)
		}
	}
}
