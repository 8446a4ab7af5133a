package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Settings struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// New builds a console logger, teed into a size-rotated file when
// Settings.File is set.
func New(s Settings) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(s.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "Unknown log level %q", s.Level)
		}
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level),
	}

	if s.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    s.MaxSizeMB,
			MaxBackups: s.MaxBackups,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
