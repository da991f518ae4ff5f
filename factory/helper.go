package factory

import (
	"errors"
	"os"

	"github.com/allape/sysevents/capture/helper"
	"github.com/allape/sysevents/config"
)

func resolveHelper(t config.HelperDriverType, goos string) config.HelperDriverType {
	if t != config.HelperAuto {
		return t
	}
	if goos == "windows" {
		return config.HelperPowerShell
	}
	return config.HelperNone
}

func HelperFromConfig(conf config.Config, goos string) (*helper.Supervisor, error) {
	var command helper.Command

	switch t := resolveHelper(conf.Helper.Type, goos); t {
	case config.HelperNone:
		l.Warn().Println("helper driver is none, no external hook process")
		return nil, nil
	case config.HelperPowerShell:
		script := ""
		if conf.Helper.Script != "" {
			data, err := os.ReadFile(conf.Helper.Script)
			if err != nil {
				return nil, err
			}
			script = string(data)
		}
		l.Info().Println("helper driver is powershell:", conf.Helper.Src.Executable())
		c, err := helper.PowerShellCommand(conf.Helper.Src.Executable(), script)
		if err != nil {
			return nil, err
		}
		command = c
	case config.HelperShell:
		if conf.Helper.Src.Empty() {
			return nil, errors.New("helper src is empty")
		}
		l.Info().Println("helper driver is shell:", []string(conf.Helper.Src))
		command = conf.Helper.Src.ToCommand
	default:
		return nil, unknownDriver("helper", string(t))
	}

	return helper.New(command, &helper.Options{
		RestartDelay: conf.RestartDelay(),
	}), nil
}
