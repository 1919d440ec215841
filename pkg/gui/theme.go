package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/tetriterm/pkg/tetris"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name   string      `json:"name"`
	Border tcell.Color `json:"border"`
	Empty  tcell.Color `json:"empty"`
	Label  tcell.Color `json:"label"`
	Msg    tcell.Color `json:"msg"`
	Lost   tcell.Color `json:"lost"`
	PieceI tcell.Color `json:"pieceI"`
	PieceO tcell.Color `json:"pieceO"`
	PieceT tcell.Color `json:"pieceT"`
	PieceJ tcell.Color `json:"pieceJ"`
	PieceL tcell.Color `json:"pieceL"`
	PieceS tcell.Color `json:"pieceS"`
	PieceZ tcell.Color `json:"pieceZ"`
}

// ThemeHex is the form themes take in a theme file
type ThemeHex struct {
	Name   string `json:"name"`
	Border string `json:"border"`
	Empty  string `json:"empty"`
	Label  string `json:"label"`
	Msg    string `json:"msg"`
	Lost   string `json:"lost"`
	PieceI string `json:"pieceI"`
	PieceO string `json:"pieceO"`
	PieceT string `json:"pieceT"`
	PieceJ string `json:"pieceJ"`
	PieceL string `json:"pieceL"`
	PieceS string `json:"pieceS"`
	PieceZ string `json:"pieceZ"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Piece returns the color for a cell tag, or Empty for an unknown tag
func (t Theme) Piece(tag string) tcell.Color {
	switch tag {
	case tetris.KindI.Tag():
		return t.PieceI
	case tetris.KindO.Tag():
		return t.PieceO
	case tetris.KindT.Tag():
		return t.PieceT
	case tetris.KindJ.Tag():
		return t.PieceJ
	case tetris.KindL.Tag():
		return t.PieceL
	case tetris.KindS.Tag():
		return t.PieceS
	case tetris.KindZ.Tag():
		return t.PieceZ
	default:
		return t.Empty
	}
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Border.Hex()),
		fmtHex(t.Empty.Hex()),
		fmtHex(t.Label.Hex()),
		fmtHex(t.Msg.Hex()),
		fmtHex(t.Lost.Hex()),
		fmtHex(t.PieceI.Hex()),
		fmtHex(t.PieceO.Hex()),
		fmtHex(t.PieceT.Hex()),
		fmtHex(t.PieceJ.Hex()),
		fmtHex(t.PieceL.Hex()),
		fmtHex(t.PieceS.Hex()),
		fmtHex(t.PieceZ.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Empty),
		tcell.GetColor(t.Label),
		tcell.GetColor(t.Msg),
		tcell.GetColor(t.Lost),
		tcell.GetColor(t.PieceI),
		tcell.GetColor(t.PieceO),
		tcell.GetColor(t.PieceT),
		tcell.GetColor(t.PieceJ),
		tcell.GetColor(t.PieceL),
		tcell.GetColor(t.PieceS),
		tcell.GetColor(t.PieceZ),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LoadThemes reads a JSON list of ThemeHex from path
func LoadThemes(path string) ([]ThemeHex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: reading %s: %w", path, err)
	}

	var themes []ThemeHex
	if err := json.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("theme: parsing %s: %w", path, err)
	}

	return themes, nil
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.Color247,     // Border
	tcell.ColorDefault, // Empty
	tcell.Color247,     // Label
	tcell.Color160,     // Msg
	tcell.Color196,     // Lost
	tcell.Color39,      // PieceI
	tcell.Color226,     // PieceO
	tcell.Color130,     // PieceT
	tcell.Color129,     // PieceJ
	tcell.Color208,     // PieceL
	tcell.Color34,      // PieceS
	tcell.Color160,     // PieceZ
}

// ThemeMono draws every piece in one color
var ThemeMono = Theme{
	"mono",             // Name
	tcell.ColorDefault, // Border
	tcell.ColorDefault, // Empty
	tcell.ColorDefault, // Label
	tcell.ColorDefault, // Msg
	tcell.ColorDefault, // Lost
	tcell.Color252,     // PieceI
	tcell.Color252,     // PieceO
	tcell.Color252,     // PieceT
	tcell.Color252,     // PieceJ
	tcell.Color252,     // PieceL
	tcell.Color252,     // PieceS
	tcell.Color252,     // PieceZ
}

// Themes are the built-in themes, searched after any imported ones
var Themes = []Theme{ThemeBasic, ThemeMono}
