package banner

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func testConfig() Config {
	return Config{
		AppName: "homunculus",
		Version: "1.0.0",
		URL:     "http://127.0.0.1:3000",
		Routes: []Route{
			{Name: "API", Path: "/api/v1"},
			{Name: "GraphQL", Path: "/graphql"},
		},
		Details: []Detail{
			{Label: "Storage", Value: "file"},
			{Label: "Scheme", Value: "grayscale"},
		},
	}
}

func TestPrintLayouts(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		want    []string
		notWant []string
	}{
		{
			name:  "unknown width is full",
			width: 0,
			want:  []string{"╔", "HOMUNCULUS 1.0.0", "http://127.0.0.1:3000/graphql", "Storage:", "grayscale"},
		},
		{
			name:  "full",
			width: 120,
			want:  []string{"╚", "http://127.0.0.1:3000/api/v1"},
		},
		{
			name:    "compact",
			width:   70,
			want:    []string{"homunculus 1.0.0", "[WEB] http://127.0.0.1:3000", "Storage: file"},
			notWant: []string{"╔"},
		},
		{
			name:    "minimal",
			width:   45,
			want:    []string{"homunculus 1.0.0\n127.0.0.1:3000\n"},
			notWant: []string{"Storage"},
		},
		{
			name:    "micro",
			width:   20,
			want:    []string{"homunculus 127.0.0.1:3000\n"},
			notWant: []string{"1.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Print(&buf, testConfig(), tt.width)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestFullBoxLinesAligned(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, testConfig(), 100)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if n := utf8.RuneCountInString(line); n != boxWidth {
			t.Errorf("line %q has %d runes, want %d", line, n, boxWidth)
		}
	}
}

func TestBoxLineTruncates(t *testing.T) {
	var buf bytes.Buffer
	boxLine(&buf, strings.Repeat("x", 200))
	if n := utf8.RuneCountInString(strings.TrimSuffix(buf.String(), "\n")); n != boxWidth {
		t.Errorf("truncated line has %d runes, want %d", n, boxWidth)
	}
}

func TestMicroWithoutURL(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Config{AppName: "homunculus"}, 10)
	if buf.String() != "homunculus\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestHostPort(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://localhost:3000", "localhost:3000"},
		{"https://example.com/path", "example.com"},
		{"[::1]:3000", "[::1]:3000"},
	}
	for _, tt := range tests {
		if got := hostPort(tt.in); got != tt.want {
			t.Errorf("hostPort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
