//go:build !unix

package launch

import (
	"fmt"
	"os/exec"
)

// Spawn starts program and reaps it in the background
func Spawn(program string, args []string) (int, error) {
	cmd := exec.Command(program, args...)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", program, err)
	}

	pid := cmd.Process.Pid
	go func() { _ = cmd.Wait() }()

	return pid, nil
}
