package core

import "os/exec"

// Runner abstracts command execution so tests can substitute it.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// RealRunner executes commands on the local machine.
type RealRunner struct{}

func (r *RealRunner) Run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

// CommandRunner is the global runner used by LocalTransport.
var CommandRunner Runner = &RealRunner{}

// RunCommand runs a command through the global CommandRunner.
func RunCommand(name string, args ...string) (string, error) {
	return CommandRunner.Run(name, args...)
}
