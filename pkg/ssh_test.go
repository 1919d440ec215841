package pkg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSSHClientArgs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SSHAddress = SshPort
	cfg.ClientBinary = "/usr/local/bin/tetriterm"
	s := NewSSHServer(cfg)

	assert.Equal(t, []string{"--connect", ServerPort, "--name", "bob"}, s.clientArgs("bob", nil))
	assert.Equal(t,
		[]string{"--connect", ServerPort, "--name", "bobsmith", "--match", "friday-night"},
		s.clientArgs("bob smith", []string{"friday", "night"}))
}

func TestSSHServerRequiresSettings(t *testing.T) {
	s := &SSHServer{ClientBinary: "tetriterm"}
	assert.Error(t, s.ListenAndServe())

	s = &SSHServer{ListenAddress: "127.0.0.1:0"}
	assert.Error(t, s.ListenAndServe())

	assert.NoError(t, s.Shutdown(context.Background()))
}
