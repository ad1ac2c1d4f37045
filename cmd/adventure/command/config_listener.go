package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/pixil98/go-adventure/internal/listener"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

var listenerTypeNames = map[ListenerType]string{
	ListenerTypeTelnet: "telnet",
	ListenerTypeSSH:    "ssh",
}

func (lt ListenerType) String() string {
	if n, ok := listenerTypeNames[lt]; ok {
		return n
	}
	return fmt.Sprintf("listener(%d)", int(lt))
}

func (lt *ListenerType) UnmarshalText(text []byte) error {
	for k, v := range listenerTypeNames {
		if v == string(text) {
			*lt = k
			return nil
		}
	}
	return fmt.Errorf("unknown listener type: %s", text)
}

type ListenerConfig struct {
	Protocol ListenerType `json:"protocol"`

	// Host is the interface to bind; empty binds every interface.
	Host string `json:"host,omitempty"`
	Port uint16 `json:"port"`

	// HostKeyPath is read if it exists and written with a new key if not.
	// Without it ssh listeners use a throwaway key.
	HostKeyPath string `json:"host_key_path,omitempty"`
}

func (cl *ListenerConfig) addr() string {
	return net.JoinHostPort(cl.Host, strconv.Itoa(int(cl.Port)))
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Protocol != ListenerTypeSSH && cl.HostKeyPath != "" {
		el.Add(fmt.Errorf("host_key_path is only used by ssh listeners"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.addr(), cm), nil
	case ListenerTypeSSH:
		hostKey, err := cl.hostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSshListener(cl.addr(), cm, hostKey), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

func (cl *ListenerConfig) hostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("no host_key_path configured for ssh listener, using a throwaway key")
		return newHostKey("")
	}

	keyBytes, err := os.ReadFile(cl.HostKeyPath)
	if os.IsNotExist(err) {
		slog.Info("generating ssh host key", "path", cl.HostKeyPath)
		return newHostKey(cl.HostKeyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
	}
	return signer, nil
}

// newHostKey generates an ed25519 host key, writing it to path when set so
// clients see the same key after a restart.
func newHostKey(path string) (ssh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	if path != "" {
		block, err := ssh.MarshalPrivateKey(priv, "go-adventure host key")
		if err != nil {
			return nil, fmt.Errorf("encoding key: %w", err)
		}
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
			return nil, fmt.Errorf("writing host key %q: %w", path, err)
		}
	}

	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("creating signer: %w", err)
	}
	return signer, nil
}
