package navigation

import (
	"sync"

	"go.uber.org/zap"
)

// Recorder remembers every path it was sent to.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) GoTo(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

// Paths returns the visited paths in order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Current returns the last visited path, or "" before any navigation.
func (r *Recorder) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

// Logger reports navigation intents through zap, optionally forwarding them.
type Logger struct {
	logger *zap.Logger
	next   interface{ GoTo(path string) }
}

// NewLogger wraps next, which may be nil.
func NewLogger(logger *zap.Logger, next interface{ GoTo(path string) }) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger, next: next}
}

func (l *Logger) GoTo(path string) {
	l.logger.Info("navigate", zap.String("path", path))
	if l.next != nil {
		l.next.GoTo(path)
	}
}
