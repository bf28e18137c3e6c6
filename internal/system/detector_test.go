package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChrisPortman/puppet/internal/core"
	"github.com/ChrisPortman/puppet/internal/transport"
)

func TestDetect(t *testing.T) {
	mockTr := transport.NewMockTransport()
	mockTr.AddResponse("cat /etc/os-release", "ID=ubuntu\nVERSION_ID=\"24.04\"\nPRETTY_NAME=\"Ubuntu 24.04\"\n")
	mockTr.AddResponse("hostname", "web01\n")
	mockTr.AddResponse("id -u -n", "admin\n")
	mockTr.AddResponse("echo $HOME", "/home/admin\n")

	ctx := &core.SystemContext{Context: context.Background(), Transport: mockTr}
	Detect(ctx)

	assert.Equal(t, "linux", ctx.OS)
	assert.Equal(t, "ubuntu", ctx.Distro)
	assert.Equal(t, "web01", ctx.Hostname)
	assert.Equal(t, "admin", ctx.User)
	assert.Equal(t, "/home/admin", ctx.HomeDir)
}

func TestDetect_ToleratesFailures(t *testing.T) {
	mockTr := transport.NewMockTransport()
	mockTr.AddError("cat /etc/os-release", assert.AnError)
	mockTr.AddError("hostname", assert.AnError)
	mockTr.AddError("id -u -n", assert.AnError)
	mockTr.AddError("echo $HOME", assert.AnError)

	ctx := &core.SystemContext{Context: context.Background(), Transport: mockTr, Distro: "unknown"}
	Detect(ctx)

	assert.Equal(t, "unknown", ctx.Distro)
}
