package transport

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/ChrisPortman/puppet/internal/config"
)

// SSHTransport runs commands on a remote host over SSH. When the host is
// configured with become_method sudo, every command is wrapped in
// "sudo -S" and the password is fed through stdin so it never appears in
// the process list.
type SSHTransport struct {
	client   *ssh.Client
	host     config.Host
	password string
}

func NewSSHTransport(host config.Host, password string) (*SSHTransport, error) {
	var authMethods []ssh.AuthMethod

	if host.SSHKeyPath != "" {
		key, err := os.ReadFile(host.SSHKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read ssh key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ssh key: %w", err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	} else {
		authMethods = append(authMethods, ssh.Password(password))
	}

	sshConfig := &ssh.ClientConfig{
		User:            host.User,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // Note: known_hosts verification is recommended in production
		Timeout:         10 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", host.Address, host.Port)
	client, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("ssh connection error (%s): %w", host.Name, err)
	}

	return &SSHTransport{client: client, host: host, password: password}, nil
}

func (t *SSHTransport) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// Execute runs a command and returns its combined output.
func (t *SSHTransport) Execute(ctx context.Context, cmd string) (string, error) {
	session, err := t.client.NewSession()
	if err != nil {
		return "", err
	}
	defer session.Close()

	finalCmd := cmd
	if t.host.BecomeMethod == "sudo" && t.password != "" {
		// -S: read password from stdin, -p '': no prompt
		finalCmd = fmt.Sprintf("sudo -S -p '' sh -c %q", cmd)
		session.Stdin = strings.NewReader(t.password + "\n")
	}

	out, err := session.CombinedOutput(finalCmd)
	return string(out), err
}

func (t *SSHTransport) GetOS(ctx context.Context) (string, error) {
	out, err := t.Execute(ctx, "uname -s")
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(out)), nil
}
