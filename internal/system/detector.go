// Package system fills the SystemContext with facts about the target
// machine. Detection goes through the transport, so it works against
// remote hosts the same way it does locally.
package system

import (
	"strings"

	"github.com/ChrisPortman/puppet/internal/core"
)

// Detect analyzes the target system and fills the SystemContext.
// Failures leave the affected field at its default; conditions that
// depend on it simply won't match.
func Detect(ctx *core.SystemContext) {
	execCmd := func(cmdStr string) (string, error) {
		return ctx.Transport.Execute(ctx.Context, cmdStr)
	}

	if osName, err := ctx.Transport.GetOS(ctx.Context); err == nil {
		ctx.OS = osName
	}

	info := readOSRelease(execCmd)
	if info["ID"] != "" {
		ctx.Distro = info["ID"]
	}

	if hostname, err := execCmd("hostname"); err == nil {
		ctx.Hostname = strings.TrimSpace(hostname)
	}

	if username, err := execCmd("id -u -n"); err == nil {
		ctx.User = strings.TrimSpace(username)
	}
	if home, err := execCmd("echo $HOME"); err == nil {
		ctx.HomeDir = strings.TrimSpace(home)
	}
}

func readOSRelease(execCmd func(string) (string, error)) map[string]string {
	info := make(map[string]string)
	out, err := execCmd("cat /etc/os-release")
	if err != nil {
		return info
	}

	for _, line := range strings.Split(out, "\n") {
		if parts := strings.SplitN(line, "=", 2); len(parts) == 2 {
			key := parts[0]
			val := strings.Trim(strings.TrimSpace(parts[1]), "\"")
			info[key] = val
		}
	}
	return info
}
