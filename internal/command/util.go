package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"golang.org/x/term"

	"github.com/stolasapp/courseware/internal/config"
	"github.com/stolasapp/courseware/internal/storage"
)

type configKey struct{}

// prompt reads one line from stdin, writing the label and masking input only
// when stdin is a terminal so piped input works unattended.
func prompt(label string, mask bool) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}
	if _, err := os.Stderr.WriteString(label); err != nil {
		return nil, err
	}
	if !mask {
		return readLine(os.Stdin)
	}
	line, err := term.ReadPassword(fd)
	// the masked read swallows the newline
	_, _ = os.Stderr.WriteString("\n")
	return line, err
}

// readLine reads up to the next newline one byte at a time, so later prompts
// can continue from the same reader. Carriage returns are dropped and
// backspaces erase the previous byte. A final line without a newline is
// returned at EOF.
func readLine(r io.Reader) ([]byte, error) {
	var (
		buf  [1]byte
		line []byte
	)
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			switch buf[0] {
			case '\n':
				return line, nil
			case '\r':
			case '\b':
				if len(line) > 0 {
					line = line[:len(line)-1]
				}
			default:
				line = append(line, buf[0])
			}
			continue
		}
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return line, nil
		} else if err != nil {
			return line, err
		}
	}
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}

func loadConfig(ctx context.Context) (*config.Config, *slog.Logger, storage.Store, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, nil, nil, errors.New("config resolution failed")
	}
	logger := slog.Default()
	store, err := storage.NewDB(ctx, cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, store, nil
}
