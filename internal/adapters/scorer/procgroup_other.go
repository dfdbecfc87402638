//go:build !unix

package scorer

import "os/exec"

// ownGroup leaves the default Cancel in place; only the direct child is killed
func ownGroup(*exec.Cmd) {}

func reapGroup(*exec.Cmd) {}
