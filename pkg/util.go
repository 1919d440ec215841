package pkg

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"

	petname "github.com/dustinkirkland/golang-petname"
)

const maxNameLength = 20

// NewName returns a random two word name such as "calm-otter"
func NewName() string {
	return petname.Generate(2, "-")
}

// Nickname strips a player supplied name down to printable characters
func Nickname(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return r
		}
		return -1
	}, name)

	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}

func InitLog(dest, prefix string) (*os.File, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	return f, nil
}
