// Package banner prints the server startup banner
package banner

import (
	"fmt"
	"io"
	"strings"
)

// boxWidth is the width of the full boxed banner
const boxWidth = 72

// Width thresholds for each banner layout
const (
	widthFull    = 80
	widthCompact = 60
	widthMinimal = 40
)

// Config holds banner content
type Config struct {
	AppName string
	Version string
	URL     string   // base URL of the web interface
	Routes  []Route  // extra endpoints listed under the URL
	Details []Detail // key/value lines such as storage backend
}

// Route is a named endpoint shown in the banner
type Route struct {
	Name string
	Path string
}

// Detail is one labelled line
type Detail struct {
	Label string
	Value string
}

// Print writes the banner laid out for a terminal of the given width.
// A width of 0 means unknown and selects the full layout.
func Print(w io.Writer, cfg Config, width int) {
	switch {
	case width == 0 || width >= widthFull:
		printFull(w, cfg)
	case width >= widthCompact:
		printCompact(w, cfg)
	case width >= widthMinimal:
		printMinimal(w, cfg)
	default:
		printMicro(w, cfg)
	}
}

func printFull(w io.Writer, cfg Config) {
	hLine := strings.Repeat("═", boxWidth-2)

	fmt.Fprintln(w, "╔"+hLine+"╗")
	boxLine(w, "")
	boxLine(w, "   "+strings.ToUpper(cfg.AppName)+" "+cfg.Version)
	boxLine(w, "")
	fmt.Fprintln(w, "╠"+hLine+"╣")
	boxLine(w, "")

	if cfg.URL != "" {
		boxLine(w, "   Web Interface:")
		boxLine(w, "      "+cfg.URL)
		boxLine(w, "")
		for _, r := range cfg.Routes {
			boxLine(w, fmt.Sprintf("   %-10s %s%s", r.Name+":", cfg.URL, r.Path))
		}
		if len(cfg.Routes) > 0 {
			boxLine(w, "")
		}
	}

	for _, d := range cfg.Details {
		boxLine(w, fmt.Sprintf("   %-10s %s", d.Label+":", d.Value))
	}
	if len(cfg.Details) > 0 {
		boxLine(w, "")
	}

	fmt.Fprintln(w, "╚"+hLine+"╝")
	fmt.Fprintln(w)
}

// boxLine writes content padded to the box width, truncating by rune
func boxLine(w io.Writer, content string) {
	runes := []rune(content)
	if len(runes) > boxWidth-2 {
		runes = runes[:boxWidth-2]
	}
	padding := boxWidth - 2 - len(runes)
	fmt.Fprintf(w, "║%s%s║\n", string(runes), strings.Repeat(" ", padding))
}

func printCompact(w io.Writer, cfg Config) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", cfg.AppName, cfg.Version)
	if cfg.URL != "" {
		fmt.Fprintf(w, "[WEB] %s\n", cfg.URL)
	}
	for _, d := range cfg.Details {
		fmt.Fprintf(w, "%s: %s\n", d.Label, d.Value)
	}
	fmt.Fprintln(w)
}

func printMinimal(w io.Writer, cfg Config) {
	fmt.Fprintf(w, "%s %s\n", cfg.AppName, cfg.Version)
	if cfg.URL != "" {
		fmt.Fprintln(w, hostPort(cfg.URL))
	}
}

func printMicro(w io.Writer, cfg Config) {
	if cfg.URL != "" {
		fmt.Fprintf(w, "%s %s\n", cfg.AppName, hostPort(cfg.URL))
		return
	}
	fmt.Fprintln(w, cfg.AppName)
}

// hostPort strips the scheme and path from a URL
func hostPort(url string) string {
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")
	if idx := strings.Index(url, "/"); idx != -1 {
		url = url[:idx]
	}
	return url
}
