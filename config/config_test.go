package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
[server]
addr = ":9000"
cors = true

[capture]
trace = true
dedup_window_ms = 50

[poller]
type = "x11"
interval_ms = 0

[helper]
type = "shell"
src = ["node", "hook.js"]
restart_delay_ms = 250

[stream]
type = "serialport"
src = "/dev/ttyACM0"
ext = 'baud:"9600"'
`

func TestParse(t *testing.T) {
	conf, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	if conf.Server.Addr != ":9000" || !conf.Server.Cors || conf.Server.WSPath != "/ws" {
		t.Fatalf("unexpected server %+v", conf.Server)
	}
	if !conf.Capture.Trace || conf.Capture.DedupWindowMS != 50 || !conf.Capture.Autostart {
		t.Fatalf("unexpected capture %+v", conf.Capture)
	}
	if conf.Poller.Type != PollerX11 || conf.PollInterval() != 16*time.Millisecond {
		t.Fatalf("unexpected poller %+v", conf.Poller)
	}
	if conf.Hook.Type != HookAuto || conf.Keyboard.Type != KeyboardAuto {
		t.Fatal("unset sections should keep defaults")
	}
	if conf.RestartDelay() != 250*time.Millisecond {
		t.Fatalf("unexpected restart delay %s", conf.RestartDelay())
	}

	cmd, err := conf.Helper.Src.ToCommand()
	if err != nil {
		t.Fatal(err)
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != "hook.js" {
		t.Fatalf("unexpected helper command %v", cmd.Args)
	}

	baud, err := StreamExt(conf.Stream.Ext).GetBaud(115200)
	if err != nil {
		t.Fatal(err)
	}
	if baud != 9600 {
		t.Fatalf("expected baud 9600, got %d", baud)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("[server\naddr=")); err == nil {
		t.Fatal("expected error")
	}
}

func TestHelperSrc(t *testing.T) {
	var src HelperSrc
	if !src.Empty() || src.Executable() != "" {
		t.Fatal("expected empty source")
	}
	cmd, err := src.ToCommand()
	if cmd != nil || err != nil {
		t.Fatal("empty source should build no command")
	}
}

func TestGetConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(file, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	args := os.Args
	defer func() {
		os.Args = args
	}()

	os.Args = []string{"sysevents", file}
	conf, err := GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if conf.Server.Addr != ":9000" {
		t.Fatalf("expected config from file, got %+v", conf.Server)
	}

	os.Args = []string{"sysevents", filepath.Join(dir, "missing.toml")}
	if _, err := GetConfig(); err == nil {
		t.Fatal("explicit missing config should fail")
	}

	wd, _ := os.Getwd()
	defer func() {
		_ = os.Chdir(wd)
	}()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SYSEVENTS_CONFIG", "")
	os.Args = []string{"sysevents"}
	conf, err = GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if conf.Server.Addr != Default().Server.Addr {
		t.Fatal("missing default config should fall back to defaults")
	}
}
