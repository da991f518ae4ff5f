package config

import (
	"os"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/envar"
	"github.com/pelletier/go-toml/v2"
)

var l = gogger.New("config")

const DefaultConfigPath = "sysevents.toml"

// Auto picks the driver for the running OS
const Auto = "auto"

type PollerDriverType string

const (
	PollerAuto  PollerDriverType = Auto
	PollerNone  PollerDriverType = "none"
	PollerX11   PollerDriverType = "x11"
	PollerWin32 PollerDriverType = "win32"
)

type HookDriverType string

const (
	HookAuto  HookDriverType = Auto
	HookNone  HookDriverType = "none"
	HookEvdev HookDriverType = "evdev"
)

type KeyboardDriverType string

const (
	KeyboardAuto  KeyboardDriverType = Auto
	KeyboardNone  KeyboardDriverType = "none"
	KeyboardEvdev KeyboardDriverType = "evdev"
	KeyboardWin32 KeyboardDriverType = "win32"
)

type HelperDriverType string

const (
	HelperAuto       HelperDriverType = Auto
	HelperNone       HelperDriverType = "none"
	HelperPowerShell HelperDriverType = "powershell"
	HelperShell      HelperDriverType = "shell"
)

type StreamDriverType string

const (
	StreamNone       StreamDriverType = "none"
	StreamSerialPort StreamDriverType = "serialport"
)

type Server struct {
	Addr   string `toml:"addr"`
	WSPath string `toml:"ws_path"`
	Cors   bool   `toml:"cors"`
	// UI directory served instead of the embedded page when set
	UI string `toml:"ui"`
}

type Capture struct {
	Autostart bool `toml:"autostart"`
	Trace     bool `toml:"trace"`
	// DedupWindowMS 0 disables cross source dedup, negative lets the factory decide
	DedupWindowMS int `toml:"dedup_window_ms"`
}

type Poller struct {
	Type       PollerDriverType `toml:"type"`
	IntervalMS int              `toml:"interval_ms"`
	// Display X11 display, empty for $DISPLAY
	Display string `toml:"display"`
}

type Hook struct {
	Type HookDriverType `toml:"type"`
	// Src evdev by-id directory
	Src string `toml:"src"`
}

type Keyboard struct {
	Type   KeyboardDriverType `toml:"type"`
	Src    string             `toml:"src"`
	Repeat bool               `toml:"repeat"`
}

type Helper struct {
	Type HelperDriverType `toml:"type"`
	// Src powershell executable for "powershell", full command line for "shell"
	Src            HelperSrc `toml:"src"`
	Script         string    `toml:"script"`
	RestartDelayMS int       `toml:"restart_delay_ms"`
}

type Stream struct {
	Type StreamDriverType `toml:"type"`
	Src  string           `toml:"src"`
	// Ext e.g. baud:"115200"
	Ext TagString `toml:"ext"`
}

type Overlay struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Trail  int `toml:"trail"`
}

type Config struct {
	Server   Server   `toml:"server"`
	Capture  Capture  `toml:"capture"`
	Poller   Poller   `toml:"poller"`
	Hook     Hook     `toml:"hook"`
	Keyboard Keyboard `toml:"keyboard"`
	Helper   Helper   `toml:"helper"`
	Stream   Stream   `toml:"stream"`
	Overlay  Overlay  `toml:"overlay"`
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Poller.IntervalMS) * time.Millisecond
}

func (c Config) RestartDelay() time.Duration {
	return time.Duration(c.Helper.RestartDelayMS) * time.Millisecond
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:   "127.0.0.1:8787",
			WSPath: "/ws",
		},
		Capture: Capture{
			Autostart:     true,
			DedupWindowMS: -1,
		},
		Poller: Poller{
			Type:       PollerAuto,
			IntervalMS: 16,
		},
		Hook: Hook{
			Type: HookAuto,
		},
		Keyboard: Keyboard{
			Type: KeyboardAuto,
		},
		Helper: Helper{
			Type:           HelperAuto,
			RestartDelayMS: 1000,
		},
		Stream: Stream{
			Type: StreamNone,
		},
		Overlay: Overlay{
			Width:  640,
			Height: 360,
			Trail:  256,
		},
	}
}

func Parse(data []byte) (Config, error) {
	config := Default()

	err := toml.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}

	if config.Poller.IntervalMS <= 0 {
		config.Poller.IntervalMS = 16
	}
	if config.Helper.RestartDelayMS <= 0 {
		config.Helper.RestartDelayMS = 1000
	}
	if config.Server.WSPath == "" {
		config.Server.WSPath = "/ws"
	}

	return config, nil
}

// GetConfig reads os.Args[1], $SYSEVENTS_CONFIG or sysevents.toml, a missing default file yields defaults
func GetConfig() (Config, error) {
	configFile := envar.Getenv(envar.SysEventsConfig, DefaultConfigPath)
	explicit := configFile != DefaultConfigPath
	if len(os.Args) > 1 {
		configFile = os.Args[1]
		explicit = true
	}

	l.Info().Println("reading config file:", configFile)

	_, err := os.Stat(configFile)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			l.Warn().Println("config file not found, using defaults")
			return Default(), nil
		}
		return Default(), err
	}

	configData, err := os.ReadFile(configFile)
	if err != nil {
		return Default(), err
	}

	config, err := Parse(configData)
	if err != nil {
		return config, err
	}

	l.Verbose().Println("use config:", config)

	return config, nil
}
