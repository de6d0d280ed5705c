// Package logging builds the process logger for the lvlopt command:
// log/slog with a JSON (or text) handler, optionally teeing into a
// size-rotated file through lumberjack.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the logging section of the CLI configuration file.
type Config struct {
	Level           string `json:"log_level" yaml:"log_level"` // debug, info, warn, error
	Format          string `json:"format" yaml:"format"`       // json (default) or text
	IncludeSrc      bool   `json:"include_src" yaml:"include_src"`
	LogToFile       bool   `json:"log_to_file" yaml:"log_to_file"`
	Filename        string `json:"filename" yaml:"filename"`
	MaxSize         int    `json:"max_size" yaml:"max_size"`       // megabytes
	MaxAge          int    `json:"max_age" yaml:"max_age"`         // days
	MaxBackups      int    `json:"max_backups" yaml:"max_backups"` // files
	CompressOldLogs bool   `json:"compress_old_logs" yaml:"compress_old_logs"`
}

// DefaultConfig logs info and above as JSON to the console only.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", MaxSize: 10, MaxAge: 7, MaxBackups: 3}
}

const modulePath = "github.com/katalvlaran/lvlopt"

// New builds a logger writing to console, and to the rotated file when
// cfg.LogToFile is set with a filename. The returned closer releases the
// file; it is a no-op otherwise.
func New(cfg Config, console io.Writer) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{
		Level:     LevelFromString(cfg.Level),
		AddSource: cfg.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
					source.Function = strings.ReplaceAll(source.Function, modulePath, "")
				}
			}
			return a
		},
	}

	w := console
	var closer io.Closer = nopCloser{}
	if cfg.LogToFile && cfg.Filename != "" {
		target := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.CompressOldLogs,
		}
		w = io.MultiWriter(console, target)
		closer = target
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler), closer
}

// LevelFromString maps a level name to slog.Level; unknown names mean info.
func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
