package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-testutil"
)

const assetRoot = "../../../assets"

func testStorage(t *testing.T) StorageConfig {
	t.Helper()
	var sc StorageConfig
	sc.Commands.Path = filepath.Join(assetRoot, "commands")
	sc.Rooms.Path = filepath.Join(assetRoot, "rooms")
	sc.Items.Path = filepath.Join(assetRoot, "items")
	sc.Enemies.Path = filepath.Join(assetRoot, "enemies")
	sc.NPCs.Path = filepath.Join(assetRoot, "npcs")
	sc.Saves.Path = filepath.Join(t.TempDir(), "saves")
	return sc
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Storage: testStorage(t),
		Game: game.Config{
			StartRoom: "start",
			Player:    game.DefaultPlayerPreset,
			Win:       game.WinCondition{Room: "treasury", Items: []string{"golden-crown"}},
		},
		Console: ConsoleConfig{Enabled: true},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(c *Config)
		expErr string
	}{
		"valid": {
			mutate: func(c *Config) {},
		},
		"negative width": {
			mutate: func(c *Config) { c.Width = -1 },
			expErr: "width must not be negative",
		},
		"bad log level": {
			mutate: func(c *Config) { c.LogLevel = "loud" },
			expErr: "parsing log_level",
		},
		"nothing to serve": {
			mutate: func(c *Config) { c.Console.Enabled = false },
			expErr: "nothing to serve",
		},
		"listener without port": {
			mutate: func(c *Config) { c.Listeners = []ListenerConfig{{Protocol: ListenerTypeTelnet}} },
			expErr: "listener 0: port must be set",
		},
		"host key on telnet": {
			mutate: func(c *Config) {
				c.Listeners = []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 4000, HostKeyPath: "key"}}
			},
			expErr: "host_key_path is only used by ssh listeners",
		},
		"missing start room": {
			mutate: func(c *Config) { c.Game.StartRoom = "" },
			expErr: "start_room is required",
		},
		"missing asset path": {
			mutate: func(c *Config) { c.Storage.Rooms.Path = "" },
			expErr: "rooms: path is required",
		},
		"asset path does not exist": {
			mutate: func(c *Config) { c.Storage.Items.Path = "/does/not/exist" },
			expErr: "items: invalid path",
		},
		"missing save path": {
			mutate: func(c *Config) { c.Storage.Saves.Path = "" },
			expErr: "saves: path is required",
		},
		"bad nats timeout": {
			mutate: func(c *Config) { c.Nats.StartTimeout = "soon" },
			expErr: "nats: parsing start_timeout",
		},
		"nats port out of range": {
			mutate: func(c *Config) { c.Nats.Port = 70000 },
			expErr: "nats: port 70000 out of range",
		},
		"mcp without addr": {
			mutate: func(c *Config) { c.Mcp.Enabled = true },
			expErr: "mcp: addr is required",
		},
		"mcp bad origin": {
			mutate: func(c *Config) {
				c.Mcp = McpConfig{Enabled: true, Addr: "127.0.0.1:0", Origins: []string{"example.com"}}
			},
			expErr: "must start with http:// or https://",
		},
		"mcp alone is enough to serve": {
			mutate: func(c *Config) {
				c.Console.Enabled = false
				c.Mcp = McpConfig{Enabled: true, Addr: "127.0.0.1:0"}
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := testConfig(t)
			tt.mutate(c)

			err := c.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestListenerType_UnmarshalJSON(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    ListenerType
		expErr string
	}{
		"telnet": {in: `{"protocol":"telnet","port":23}`, exp: ListenerTypeTelnet},
		"ssh":    {in: `{"protocol":"ssh","port":22}`, exp: ListenerTypeSSH},
		"bad":    {in: `{"protocol":"gopher","port":70}`, expErr: "unknown listener type: gopher"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var lc ListenerConfig
			err := json.Unmarshal([]byte(tt.in), &lc)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "protocol", lc.Protocol, tt.exp)
		})
	}
}

func TestListenerConfig_HostKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	cl := ListenerConfig{Protocol: ListenerTypeSSH, Port: 4022, HostKeyPath: path}

	first, err := cl.hostKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("host key not written: %v", err)
	}

	second, err := cl.hostKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "same key after reload",
		string(second.PublicKey().Marshal()), string(first.PublicKey().Marshal()))
}

func TestListenerConfig_Addr(t *testing.T) {
	tests := map[string]struct {
		cfg ListenerConfig
		exp string
	}{
		"all interfaces": {cfg: ListenerConfig{Port: 4000}, exp: ":4000"},
		"loopback":       {cfg: ListenerConfig{Host: "127.0.0.1", Port: 4000}, exp: "127.0.0.1:4000"},
		"ipv6":           {cfg: ListenerConfig{Host: "::1", Port: 22}, exp: "[::1]:22"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "addr", tt.cfg.addr(), tt.exp)
		})
	}
}

func TestStorageConfig_BuildDictionary(t *testing.T) {
	sc := testStorage(t)

	dict, err := sc.BuildDictionary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testConfig(t).Game
	if err := cfg.Check(dict); err != nil {
		t.Fatalf("bundled assets fail the game check: %v", err)
	}

	g, err := dict.NewGame(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "start room", g.CurrentRoom().Name(), "Starting Room")
}

func TestSaveConfig_BuildFileStore(t *testing.T) {
	sc := SaveConfig{Path: filepath.Join(t.TempDir(), "nested", "saves")}

	_, err := sc.BuildFileStore()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(sc.Path)
	if err != nil {
		t.Fatalf("save directory not created: %v", err)
	}
	testutil.AssertEqual(t, "is dir", info.IsDir(), true)
}

func TestBuildWorkers(t *testing.T) {
	tests := map[string]struct {
		mutate func(c *Config)
		exp    []string
		expErr string
	}{
		"console only": {
			mutate: func(c *Config) { c.Width = 80 },
			exp:    []string{"console"},
		},
		"every surface": {
			mutate: func(c *Config) {
				c.Width = 80
				c.Listeners = []ListenerConfig{
					{Protocol: ListenerTypeTelnet, Port: 4000},
					{Protocol: ListenerTypeSSH, Port: 4022},
				}
				c.Nats = NatsConfig{Enabled: true, Port: -1, LogEvents: true}
				c.Mcp = McpConfig{Enabled: true, Addr: "127.0.0.1:0"}
			},
			exp: []string{"console", "event-logger", "listener-0", "listener-1", "mcp", "nats"},
		},
		"unknown start room": {
			mutate: func(c *Config) { c.Game.StartRoom = "nowhere" },
			expErr: "checking game config",
		},
		"wrong config type": {
			expErr: "unable to cast config",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var config any = "not a config"
			if tt.mutate != nil {
				c := testConfig(t)
				tt.mutate(c)
				config = c
			}

			workers, err := BuildWorkers(config, func() {})
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got []string
			for name := range workers {
				got = append(got, name)
			}
			sort.Strings(got)
			testutil.AssertEqual(t, "workers", strings.Join(got, ","), strings.Join(tt.exp, ","))
		})
	}
}
