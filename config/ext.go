package config

import (
	"os/exec"
)

type HelperSrc []string

func (s HelperSrc) Empty() bool {
	return len(s) == 0
}

func (s HelperSrc) ToCommand() (*exec.Cmd, error) {
	if len(s) == 0 {
		return nil, nil
	}

	return exec.Command(s[0], s[1:]...), nil
}

// Executable first segment, used as the powershell path
func (s HelperSrc) Executable() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

type StreamExt TagString

func (e StreamExt) GetBaud(defaultValue int) (int, error) {
	return TagString(e).GetInt("baud", defaultValue)
}
