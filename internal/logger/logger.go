package logger

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/austiecodes/promptrec/internal/utils"
)

const defaultLogFile = "promptrec.log"

// New builds a logger that writes to a rotating file. The TUI and the MCP
// stdio server own stdout, so nothing is written to the terminal.
// The returned closer flushes and closes the file.
func New(cfg *utils.Config) (*log.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" {
		appDir, err := utils.GetAppDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(appDir, defaultLogFile)
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	return NewWithWriter(rotator, cfg.Debug), rotator, nil
}

// NewWithWriter builds a logger over w.
func NewWithWriter(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "promptrec",
	})
}

// Setup creates the file logger and installs it as the package default.
func Setup(cfg *utils.Config) (io.Closer, error) {
	l, closer, err := New(cfg)
	if err != nil {
		return nil, err
	}
	log.SetDefault(l)
	return closer, nil
}
