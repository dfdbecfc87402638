//go:build unix

package scorer

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// ownGroup starts the scorer as the leader of a new process group so a kill
// reaches everything it forked
func ownGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return killGroup(cmd.Process.Pid)
	}
}

// reapGroup kills whatever is left in the scorer's group after Wait
func reapGroup(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = killGroup(cmd.Process.Pid)
	}
}

func killGroup(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}
