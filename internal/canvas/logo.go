package canvas

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const offlineMarker = "OFFLINE!"

const logoArt = ` __        __  ___    ____    ____    _       _____
 \ \      / / / _ \  |  _ \  |  _ \  | |     | ____|
  \ \ /\ / / | | | | | |_) | | | | | | |     |  _|
   \ V  V /  | |_| | |  _ <  | |_| | | |___  | |___
    \_/\_/    \___/  |_| \_\ |____/  |_____| |_____|`

// Logo returns the logo as lines, top to bottom. It starts with a blank line
// and ends with two; in offline mode a blinking marker is centered under the
// art. Lines carry no trailing newline.
func Logo(offline bool) []string {
	art := strings.Split(logoArt, "\n")
	lines := make([]string, 0, len(art)+4)
	lines = append(lines, "")
	lines = append(lines, art...)
	if offline {
		width := widest(art)
		pad := (width - len(offlineMarker)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+
			GreenFg.String()+SlowBlink.String()+Bold.String()+offlineMarker+Reset.String())
	}
	return append(lines, "", "")
}

// widest returns the display width of the longest line, ignoring escapes.
func widest(lines []string) int {
	w := 0
	for _, l := range lines {
		if n := ansi.StringWidth(l); n > w {
			w = n
		}
	}
	return w
}
