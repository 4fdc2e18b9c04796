//go:build unix

package launch

import (
	"fmt"
	"os/exec"
	"syscall"
)

// Spawn starts program in a new session so it outlives the launcher and is
// not tied to its terminal. The child is reaped in the background.
func Spawn(program string, args []string) (int, error) {
	cmd := exec.Command(program, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", program, err)
	}

	pid := cmd.Process.Pid
	go func() { _ = cmd.Wait() }()

	return pid, nil
}
