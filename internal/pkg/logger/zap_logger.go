package logger

import (
	"bufio"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module string, message string, details map[string]interface{})
	Info(module string, message string, details map[string]interface{})
	Warn(module string, message string, details map[string]interface{})
	Error(module string, message string, details map[string]interface{})
	Sync() error
	GetLogs(level string, limit int, offset int) ([]LogEntry, error)
	GetLogById(id string) (*LogEntry, error)
}

type LogEntry struct {
	Id        string                 `json:"id"`
	Level     string                 `json:"level"`
	Timestamp string                 `json:"timestamp"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type ZapLogger struct {
	logger   *zap.Logger
	filePath string
}

// NewZapLogger writes JSON entries to a rotated file and mirrors them to the
// console. The file feeds the admin log endpoints, so the encoder config must
// stay in sync with parseLogLine.
func NewZapLogger(filePath string, isDevelopment bool) (ILogger, error) {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "timestamp"

	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(writer), zapcore.InfoLevel)

	var consoleEncoder zapcore.Encoder
	if isDevelopment {
		devConfig := zap.NewDevelopmentEncoderConfig()
		devConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(devConfig)
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig)
	}
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.DebugLevel)

	core := zapcore.NewTee(fileCore, consoleCore)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &ZapLogger{logger: logger, filePath: filePath}, nil
}

// NewIsolatedLogger writes to its own file only, without console output.
// Used for the agent oracle trace so chat noise stays out of the main log.
func NewIsolatedLogger(filePath string) (ILogger, error) {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "timestamp"

	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(writer), zapcore.DebugLevel)

	logger := zap.New(fileCore, zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{logger: logger, filePath: filePath}, nil
}

func (z *ZapLogger) buildFields(module string, details map[string]interface{}) []zap.Field {
	fields := []zap.Field{zap.String("module", module)}
	if len(details) > 0 {
		fields = append(fields, zap.Any("details", details))
	}
	return fields
}

func (z *ZapLogger) Debug(module string, message string, details map[string]interface{}) {
	z.logger.Debug(message, z.buildFields(module, details)...)
}

func (z *ZapLogger) Info(module string, message string, details map[string]interface{}) {
	z.logger.Info(message, z.buildFields(module, details)...)
}

func (z *ZapLogger) Warn(module string, message string, details map[string]interface{}) {
	z.logger.Warn(message, z.buildFields(module, details)...)
}

func (z *ZapLogger) Error(module string, message string, details map[string]interface{}) {
	z.logger.Error(message, z.buildFields(module, details)...)
}

func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

type rawLogLine struct {
	Level     string                 `json:"level"`
	Timestamp string                 `json:"timestamp"`
	Module    string                 `json:"module"`
	Message   string                 `json:"msg"`
	Details   map[string]interface{} `json:"details"`
}

func parseLogLine(line string) (*LogEntry, bool) {
	var raw rawLogLine
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, false
	}
	if raw.Timestamp == "" {
		return nil, false
	}
	id := fmt.Sprintf("%x", md5.Sum([]byte(line)))
	return &LogEntry{
		Id:        id,
		Level:     raw.Level,
		Timestamp: raw.Timestamp,
		Module:    raw.Module,
		Message:   raw.Message,
		Details:   raw.Details,
	}, true
}

// GetLogs reads the current log file newest-first. Level filter is
// case-insensitive; empty level returns everything.
func (z *ZapLogger) GetLogs(level string, limit int, offset int) ([]LogEntry, error) {
	file, err := os.Open(z.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []LogEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, ok := parseLogLine(scanner.Text())
		if !ok {
			continue
		}
		if level != "" && !strings.EqualFold(entry.Level, level) {
			continue
		}
		entries = append(entries, *entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if offset >= len(entries) {
		return []LogEntry{}, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (z *ZapLogger) GetLogById(id string) (*LogEntry, error) {
	file, err := os.Open(z.filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, ok := parseLogLine(scanner.Text())
		if !ok {
			continue
		}
		if entry.Id == id {
			return entry, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("log entry %s not found", id)
}
