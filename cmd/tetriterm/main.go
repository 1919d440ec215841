package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/qnkhuat/tetriterm/pkg"
	"github.com/qnkhuat/tetriterm/pkg/gui"
	"golang.org/x/term"
)

func main() {
	cfg := pkg.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)

	connect := flag.String("connect", cfg.Address, "address of the server to play on")
	practice := flag.Bool("practice", false, "play alone on a local server")
	match := flag.String("match", "", "match to join, empty starts a new one")
	name := flag.String("name", "", "player name, empty picks one")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "name of the color theme")
	flag.StringVar(&cfg.ThemeFile, "theme-file", "", "JSON file with extra themes")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "tetriterm must be run in a terminal")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := pkg.InitLog(cfg.LogPath, "CLIENT: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	var custom []gui.ThemeHex
	if cfg.ThemeFile != "" {
		if custom, err = gui.LoadThemes(cfg.ThemeFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	theme, err := gui.ImportThemes(cfg.Theme, custom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %s\n", err, cfg.Theme)
		os.Exit(1)
	}

	address := *connect
	if *practice {
		s := pkg.NewServer(cfg)
		defer s.Stop()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		go func() {
			if err := s.Serve(listener); err != nil {
				log.Printf("Practice server stopped: %v", err)
			}
		}()
		address = listener.Addr().String()
	}

	log.Println("New Client")
	cl := pkg.NewClient(theme, pkg.Nickname(*name))
	if err := cl.Connect(address); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cl.Disconnect()

	go cl.HandleWrite()
	go cl.HandleRead()
	cl.Join(*match)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cl.App.Stop()
	}()

	if err := cl.App.SetRoot(cl.Layout, true).Run(); err != nil {
		log.Printf("UI failed: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return
	}

	state := cl.State()
	switch {
	case state.Match == "":
		color.Yellow("Never joined a match")
	case state.Board.Lost:
		color.Red("Game over in %s", state.Match)
	default:
		color.Green("Left %s as %s, rejoin with --match %s", state.Match, state.Player, state.Match)
	}
}
