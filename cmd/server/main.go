package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qnkhuat/tetriterm/pkg"
)

func main() {
	cfg := pkg.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVar(&cfg.Address, "listen", cfg.Address, "TCP address for game clients")
	flag.StringVar(&cfg.SSHAddress, "ssh", "", "address to serve SSH players on, e.g. "+pkg.SshPort)
	flag.StringVar(&cfg.HostKeyFile, "host-key", "", "SSH host key file, empty generates one")
	flag.StringVar(&cfg.ClientBinary, "client", "tetriterm", "client binary run for SSH sessions")
	flag.DurationVar(&cfg.IdleTimeout, "idle", cfg.IdleTimeout, "remove matches idle for this long")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := pkg.InitLog(cfg.LogPath, "SERVER: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.Println("Server started")

	s := pkg.NewServer(cfg)
	go s.CleanIdleMatches(time.Minute)

	var sshServer *pkg.SSHServer
	if cfg.SSHAddress != "" {
		sshServer = pkg.NewSSHServer(cfg)
		go func() {
			if err := sshServer.ListenAndServe(); err != nil {
				log.Fatalf("SSH server failed: %v", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		log.Printf("Received %s, shutting down", sig)

		if sshServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sshServer.Shutdown(ctx); err != nil {
				log.Printf("SSH shutdown: %v", err)
			}
		}
		s.Stop()
	}()

	if err := s.Listen(cfg.Address); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
