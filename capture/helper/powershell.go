package helper

import (
	_ "embed"
	"encoding/base64"
	"os/exec"

	"golang.org/x/text/encoding/unicode"
)

const DefaultPowerShell = "powershell.exe"

//go:embed mousehook.ps1
var MouseHookScript string

// EncodeScript base64 of the UTF-16LE script, as -EncodedCommand expects
func EncodeScript(script string) (string, error) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(script)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(encoded)), nil
}

func PowerShellArgs(script string) ([]string, error) {
	encoded, err := EncodeScript(script)
	if err != nil {
		return nil, err
	}
	return []string{
		"-NoLogo",
		"-NoProfile",
		"-NonInteractive",
		"-WindowStyle", "Hidden",
		"-EncodedCommand", encoded,
	}, nil
}

// PowerShellCommand runs script with exe, the script is encoded once
func PowerShellCommand(exe, script string) (Command, error) {
	if exe == "" {
		exe = DefaultPowerShell
	}
	if script == "" {
		script = MouseHookScript
	}

	args, err := PowerShellArgs(script)
	if err != nil {
		return nil, err
	}

	return func() (*exec.Cmd, error) {
		cmd := exec.Command(exe, args...)
		hideWindow(cmd)
		return cmd, nil
	}, nil
}
