package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/lumberjack"
)

// Log levels.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Settings describes where and how records are written. An empty FilePath
// writes to stderr.
type Settings struct {
	Level      string `mapstructure:"log_level" validate:"required,oneof=debug info warning error"`
	Format     string `mapstructure:"log_format" validate:"required,oneof=text json"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultSettings logs info and above as text to stderr.
func DefaultSettings() Settings {
	return Settings{Level: LevelInfo, Format: FormatText}
}

// Validate checks that all fields in Settings are valid.
func (s *Settings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for logging settings: %w", err)
	}

	if s.FilePath != "" {
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return fmt.Errorf("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 10 {
			return fmt.Errorf("max backups must be between 1 and 10")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return fmt.Errorf("max age must be between 1 and 365 days")
		}
	}
	return nil
}

// FromSettings validates s and returns a Logger for it. The returned closer
// releases the log file, if any.
func FromSettings(s Settings) (Logger, io.Closer, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if s.FilePath != "" {
		lj := &lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
		}
		w, closer = lj, lj
	}

	return New(slog.New(newHandler(w, s))), closer, nil
}

func newHandler(w io.Writer, s Settings) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(s.Level)}
	if s.Format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
