package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// SSHServer runs the client binary in a pseudo-terminal for every SSH
// session, pointed at the game server. The SSH user becomes the player name
// and the session command, if any, the match to join.
type SSHServer struct {
	ListenAddress string
	ClientBinary  string
	ServerAddress string
	HostKeyFile   string

	server *ssh.Server
}

func NewSSHServer(cfg Config) *SSHServer {
	return &SSHServer{
		ListenAddress: cfg.SSHAddress,
		ClientBinary:  cfg.ClientBinary,
		ServerAddress: cfg.Address,
		HostKeyFile:   cfg.HostKeyFile,
	}
}

// clientArgs builds the client command line for a session
func (s *SSHServer) clientArgs(user string, command []string) []string {
	args := []string{"--connect", s.ServerAddress, "--name", Nickname(user)}
	if len(command) > 0 {
		args = append(args, "--match", Nickname(strings.Join(command, "-")))
	}
	return args
}

func (s *SSHServer) handle(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "non-interactive terminals are not supported\n")

		sshSession.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.ClientBinary, s.clientArgs(sshSession.User(), sshSession.Command())...)
	cmd.Env = append(cmd.Env, fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		log.Printf("SSH session for %s: starting client: %v", sshSession.User(), err)
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sshSession.Exit(1)
		return
	}
	defer f.Close()
	log.Printf("SSH session started for %s from %s", sshSession.User(), sshSession.RemoteAddr())

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	cancelCmd()
	cmd.Wait()
	log.Printf("SSH session ended for %s", sshSession.User())
}

func (s *SSHServer) ListenAndServe() error {
	if s.ListenAddress == "" {
		return errors.New("ssh: listen address must be specified")
	}
	if s.ClientBinary == "" {
		return errors.New("ssh: client binary must be specified")
	}

	s.server = &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: ServerIdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if s.HostKeyFile != "" {
		if err := s.server.SetOption(ssh.HostKeyFile(s.HostKeyFile)); err != nil {
			return fmt.Errorf("ssh: loading host key: %w", err)
		}
	}

	log.Printf("SSH listening at %s", s.ListenAddress)
	err := s.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *SSHServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
