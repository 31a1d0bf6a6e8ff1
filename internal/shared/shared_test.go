package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

func TestLogger(t *testing.T) {
	t.Run("writes structured fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "run", "abc")
		logger.Info("searching", "song", "Imagine")

		out := buf.String()
		for _, want := range []string{"searching", "song=Imagine", "run=abc"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in log output %q", want, out)
			}
		}
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("file logger creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "ytfolder.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("hello")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "hello") {
			t.Errorf("expected log line in file, got %q", string(data))
		}
	})
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _ := GenerateState()

	if a == "" || a == b {
		t.Errorf("expected distinct non-empty states, got %q and %q", a, b)
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("expected URL-safe state, got %q", a)
	}
}

func TestGenerateID(t *testing.T) {
	if id := GenerateID(); len(id) != 36 {
		t.Errorf("expected uuid string, got %q", id)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde prefix", in: "~/.ytfolder/token.json", want: filepath.Join(home, ".ytfolder/token.json")},
		{name: "bare tilde", in: "~", want: home},
		{name: "absolute", in: "/tmp/token.json", want: "/tmp/token.json"},
		{name: "relative", in: "token.json", want: "token.json"},
		{name: "tilde user form untouched", in: "~bob/x", want: "~bob/x"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "auth", "token.json")
		token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

		if err := SaveToken(path, token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("token file missing: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}

		loaded, err := LoadToken(path)
		if err != nil {
			t.Fatalf("failed to load token: %v", err)
		}
		if loaded.RefreshToken != "refresh" {
			t.Errorf("expected refresh token to round trip, got %q", loaded.RefreshToken)
		}
	})

	t.Run("empty token is not authenticated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadToken(path); err == nil {
			t.Error("expected error for empty token")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadToken(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated for missing token, got %v", err)
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	compact, err := MarshalJSON(map[string]int{"a": 1}, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("unexpected compact output %q (%v)", compact, err)
	}

	pretty, err := MarshalJSON(map[string]int{"a": 1}, true)
	if err != nil || string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected pretty output %q (%v)", pretty, err)
	}
}

func TestBrowserCommand(t *testing.T) {
	tc := []struct {
		goos string
		bin  string
	}{
		{goos: "darwin", bin: "open"},
		{goos: "linux", bin: "xdg-open"},
		{goos: "windows", bin: "rundll32"},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "https://example.com")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if filepath.Base(cmd.Args[0]) != tt.bin {
				t.Errorf("expected %s, got %v", tt.bin, cmd.Args)
			}
			if cmd.Args[len(cmd.Args)-1] != "https://example.com" {
				t.Errorf("expected url as last argument, got %v", cmd.Args)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		original := getRuntime
		defer func() { getRuntime = original }()
		getRuntime = func() string { return "plan9" }

		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
