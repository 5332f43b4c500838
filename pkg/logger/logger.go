package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Category represents a log category
type Category string

const (
	CategoryStartup    Category = "startup"
	CategoryAPI        Category = "api"
	CategoryDB         Category = "db"
	CategoryAuth       Category = "auth"
	CategoryGeneration Category = "generation"
	CategoryScheduler  Category = "scheduler"
	CategoryCache      Category = "cache"
	CategoryWebSocket  Category = "websocket"
)

var allCategories = []Category{
	CategoryStartup, CategoryAPI, CategoryDB, CategoryAuth,
	CategoryGeneration, CategoryScheduler, CategoryCache, CategoryWebSocket,
}

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes category-separated JSON log files with optional console mirroring
type Logger struct {
	mu      sync.Mutex
	logDir  string
	writers map[Category]*os.File
	console bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
	})
	return err
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logDir:  logDir,
		writers: make(map[Category]*os.File),
		console: console,
	}, nil
}

// getWriter returns or creates a file writer for the category, rotating daily
func (l *Logger) getWriter(category Category) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", category, today)
	path := filepath.Join(l.logDir, filename)

	if writer, exists := l.writers[category]; exists {
		if info, err := writer.Stat(); err == nil && info.Name() == filename {
			return writer, nil
		}
		writer.Close()
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l.writers[category] = file
	return file, nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	entry.Timestamp = time.Now()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("Error marshaling log entry: %v\n", err)
		return
	}

	writer, err := l.getWriter(entry.Category)
	if err != nil {
		fmt.Printf("Error getting log writer: %v\n", err)
	} else {
		fmt.Fprintln(writer, string(jsonData))
	}

	if l.console {
		l.printToConsole(entry)
	}
}

func (l *Logger) printToConsole(entry LogEntry) {
	timestamp := entry.Timestamp.Format("15:04:05.000")

	levelColors := map[Level]string{
		LevelDebug: "\033[36m", // Cyan
		LevelInfo:  "\033[32m", // Green
		LevelWarn:  "\033[33m", // Yellow
		LevelError: "\033[31m", // Red
	}
	reset := "\033[0m"

	fmt.Printf("%s[%s]%s [%s] [%s] %s: %s",
		levelColors[entry.Level], entry.Level, reset,
		timestamp, entry.Category, entry.Action, entry.Message)

	if entry.UserID != "" {
		fmt.Printf(" (user: %s)", entry.UserID)
	}
	if entry.Duration != "" {
		fmt.Printf(" (duration: %s)", entry.Duration)
	}
	if entry.Error != "" {
		fmt.Printf(" ERROR: %s", entry.Error)
	}
	fmt.Println()

	if len(entry.Data) > 0 {
		dataJSON, _ := json.MarshalIndent(entry.Data, "    ", "  ")
		fmt.Printf("    Data: %s\n", string(dataJSON))
	}
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, writer := range l.writers {
		writer.Close()
	}
	l.writers = make(map[Category]*os.File)
}

// Default returns the default logger
func Default() *Logger {
	if defaultLogger == nil {
		Init("logs", true)
	}
	return defaultLogger
}

// GetTypeName returns the dynamic type name of a value for diagnostics
func GetTypeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}

// Helper functions for common log operations

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryStartup, Action: action, Message: message, Data: data})
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryStartup, Action: action, Message: message, Error: errString(err), Data: data})
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: CategoryStartup, Action: action, Message: message, Data: data})
}

// API logs API request/response events
func API(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryAPI, Action: action, Message: message, Data: data})
}

// DB logs database operations
func DB(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelDebug, Category: CategoryDB, Action: action, Message: message, Data: data})
}

// DBError logs database errors
func DBError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryDB, Action: action, Message: message, Error: errString(err), Data: data})
}

// Auth logs authentication related events
func Auth(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryAuth, Action: action, Message: message, Data: data})
}

// AuthError logs authentication errors
func AuthError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryAuth, Action: action, Message: message, Error: errString(err), Data: data})
}

// Generation logs content generation pipeline events
func Generation(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryGeneration, Action: action, Message: message, Data: data})
}

// GenerationError logs content generation errors
func GenerationError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryGeneration, Action: action, Message: message, Error: errString(err), Data: data})
}

// Scheduler logs scheduler events
func Scheduler(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryScheduler, Action: action, Message: message, Data: data})
}

// SchedulerError logs scheduler errors
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryScheduler, Action: action, Message: message, Error: errString(err), Data: data})
}

// SchedulerWarn logs scheduler warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: CategoryScheduler, Action: action, Message: message, Data: data})
}

// Cache logs cache events
func Cache(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelDebug, Category: CategoryCache, Action: action, Message: message, Data: data})
}

// CacheError logs cache errors
func CacheError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryCache, Action: action, Message: message, Error: errString(err), Data: data})
}

// WebSocket logs WebSocket related events
func WebSocket(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryWebSocket, Action: action, Message: message, Data: data})
}

// WebSocketError logs WebSocket errors
func WebSocketError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryWebSocket, Action: action, Message: message, Error: errString(err), Data: data})
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: category, Action: action, Message: message, Data: data})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: category, Action: action, Message: message, Error: errString(err), Data: data})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelDebug, Category: category, Action: action, Message: message, Data: data})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: category, Action: action, Message: message, Data: data})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // Filter by category (empty = all)
	Level    Level    // Filter by level (empty = all)
	Lines    int      // Number of lines to return (default 100)
	Search   string   // Search in message/action
}

// ReadLogs reads log entries from files
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads today's log entries from the logger's log directory
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000
	}

	categories := allCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}

	today := time.Now().Format("2006-01-02")
	var entries []LogEntry

	for _, cat := range categories {
		path := filepath.Join(l.logDir, fmt.Sprintf("%s_%s.log", cat, today))
		data, err := os.ReadFile(path)
		if err != nil {
			continue // Skip if file doesn't exist
		}

		for _, line := range strings.Split(string(data), "\n") {
			if line == "" {
				continue
			}

			var entry LogEntry
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				continue
			}

			if opts.Level != "" && entry.Level != opts.Level {
				continue
			}
			if opts.Search != "" {
				needle := strings.ToLower(opts.Search)
				if !strings.Contains(strings.ToLower(entry.Message), needle) &&
					!strings.Contains(strings.ToLower(entry.Action), needle) &&
					!strings.Contains(strings.ToLower(entry.Error), needle) {
					continue
				}
			}

			entries = append(entries, entry)
		}
	}

	// Newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}

	return entries, nil
}

// GetLogDir returns the default logger's log directory
func GetLogDir() string {
	return Default().logDir
}

// ListLogFiles returns list of log files in the log directory
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

func (l *Logger) ListLogFiles() ([]string, error) {
	var files []string

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
