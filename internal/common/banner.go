package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config) {
	version := GetVersion()
	build := GetBuild()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`  .d8888b.   .d8888b.  8888888888 8888888 888b    888`,
		` d88P  Y88b d88P  Y88b 888          888   8888b   888`,
		` 888    888 Y88b.      888          888   88888b  888`,
		` 888         "Y888b.   8888888      888   888Y88b 888`,
		` 888            "Y88b. 888          888   888 Y88b888`,
		` 888    888       "888 888          888   888  Y88888`,
		` Y88b  d88P Y88b  d88P 888          888   888   Y8888`,
		`  "Y8888P"   "Y8888P"  888        8888888 888    Y888`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Portfolio Ledger & Annualized Returns%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	kvPad := 14
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Environment", config.Environment},
		{"Data", config.Data.Directory},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "  %s%-*s%s%s\n", lineColor, kvPad, kv[0], banner.ColorReset, kv[1])
	}
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
}
