//go:build !windows

package helper

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
