package logger

import (
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir      = "log"
	logFilename = "tickethub.log"
)

var Logger zerolog.Logger
var HttpLogger zerolog.Logger
var logFilePath string
var Writer io.Writer

// LOG_LEVEL keeps the numeric scale used by older deployments:
// 0=panic 1=fatal 2=error 3=warn 4=info 5=debug 6=trace
var numericLevels = map[int]zerolog.Level{
	0: zerolog.PanicLevel,
	1: zerolog.FatalLevel,
	2: zerolog.ErrorLevel,
	3: zerolog.WarnLevel,
	4: zerolog.InfoLevel,
	5: zerolog.DebugLevel,
	6: zerolog.TraceLevel,
}

func init() {
	// usable before Init is called (tests, early startup)
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()
	HttpLogger = zerolog.New(io.Discard)
}

// ParseLevel maps a LOG_LEVEL value onto a zerolog level, defaulting to info.
func ParseLevel(logLevel string) zerolog.Level {
	level, err := strconv.Atoi(logLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	zLevel, ok := numericLevels[level]
	if !ok {
		return zerolog.InfoLevel
	}
	return zLevel
}

func Init(logLevel string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.DateTime,
	}
	Writer = consoleWriter

	zLevel := ParseLevel(logLevel)
	zerolog.SetGlobalLevel(zLevel)

	Logger = zerolog.New(consoleWriter).
		Level(zLevel).
		With().
		Timestamp().
		Logger()

	// request logs only go to the file logger
	HttpLogger = zerolog.New(io.Discard).
		Level(zLevel).
		With().
		Timestamp().
		Logger()

	if zLevel <= zerolog.DebugLevel {
		buildInfo, _ := debug.ReadBuildInfo()
		Logger = Logger.With().
			Caller().
			Interface("build_info", buildInfo).
			Logger()
		Logger.Debug().Msg("Caller reporting enabled in debug mode")
	}
}

func AddFileLogger(workdir string) error {
	logFilePath = filepath.Join(workdir, logDir, logFilename)
	fileLogger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxAge:     3,
		MaxBackups: 3,
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.DateTime,
	}
	multi := zerolog.MultiLevelWriter(consoleWriter, fileLogger)
	Writer = multi

	level := Logger.GetLevel()
	Logger = zerolog.New(multi).
		Level(level).
		With().
		Timestamp().
		Logger()

	HttpLogger = zerolog.New(fileLogger).
		Level(level).
		With().
		Timestamp().
		Logger()

	return nil
}

func GetLogFilePath() string {
	return logFilePath
}
