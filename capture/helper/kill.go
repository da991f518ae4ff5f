package helper

import (
	"errors"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// KillTree kills the descendants of p, then p itself
func KillTree(p *os.Process) error {
	if p == nil {
		return nil
	}

	if proc, err := process.NewProcess(int32(p.Pid)); err == nil {
		killChildren(proc)
	}

	err := p.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func killChildren(proc *process.Process) {
	children, err := proc.Children()
	if err != nil {
		return
	}
	for _, child := range children {
		killChildren(child)
		if err := child.Kill(); err != nil {
			l.Verbose().Println("kill child", child.Pid, err)
		}
	}
}
