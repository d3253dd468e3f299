package shell

import (
	_ "embed"
	"strings"
)

//go:embed banner.txt
var banner string

// Banner returns the shell's welcome banner.
func Banner() string {
	return strings.TrimRight(banner, "\n")
}
