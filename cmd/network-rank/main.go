// network-rank - IRC network ranking charts
//
// network-rank reads a log of "N out of M" ranking samples, each paired with a
// date line, and charts the network's percentile over time as a PNG or SVG
// image, an interactive terminal view, or plain text.
package main

import (
	"os"

	"github.com/sargas/network-rank/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
