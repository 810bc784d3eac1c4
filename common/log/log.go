package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 时（例如单元测试）也能直接使用
var logger = newLogger(os.Stdout, "")

func newLogger(w io.Writer, appName string) *log.Logger {
	// 使用 os.Stdout 而不是 os.Stderr，避免控制台把所有日志显示为红色
	l := log.New(w)
	if appName != "" {
		l.SetPrefix(appName)
	}
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	return l
}

func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)
	// 启用调用者信息（显示文件名和行号）
	logger.SetReportCaller(true)
	logger.SetCallerOffset(1)
	SetLevel(logLevel)
}

// SetLevel 配置热更新时调用，默认为 info 级别
func SetLevel(logLevel string) {
	switch strings.ToLower(logLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
	} else {
		logger.Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
	} else {
		logger.Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
	} else {
		logger.Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
	} else {
		logger.Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
	} else {
		logger.Debugf(format, args...)
	}
}
