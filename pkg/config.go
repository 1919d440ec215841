package pkg

import (
	"errors"
	"flag"
	"time"
)

type Config struct {
	Width   int
	Height  int
	Gravity time.Duration

	Address      string
	SSHAddress   string
	HostKeyFile  string
	ClientBinary string
	IdleTimeout  time.Duration

	LogPath   string
	Theme     string
	ThemeFile string
}

func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Gravity:     DefaultGravity,
		Address:     ServerPort,
		IdleTimeout: ServerIdleTimeout,
		LogPath:     "./log",
		Theme:       "basic",
	}
}

// RegisterFlags binds the settings shared by the client and the server
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "board width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "board height in cells")
	fs.DurationVar(&c.Gravity, "gravity", c.Gravity, "time between gravity ticks")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "path to log file")
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New("config: width and height must be positive")
	case c.Gravity <= 0:
		return errors.New("config: gravity must be positive")
	case c.IdleTimeout < 0:
		return errors.New("config: idle timeout must not be negative")
	}
	return nil
}
