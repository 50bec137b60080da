// Package logging wraps go.uber.org/zap with the teacher's own
// per-subsystem "category" convention, generalized from its original
// hand-rolled file logger into named zap child loggers so every engine
// package (not just the CLI boot path) gets structured, leveled logging.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a pipeline subsystem, mirrored onto a zap logger name so
// log lines can be filtered per stage in aggregation tooling.
type Category string

const (
	CategoryBoot           Category = "boot"
	CategorySummary        Category = "summary"
	CategoryLCA            Category = "lca"
	CategoryCharacterize   Category = "characterize"
	CategoryKernel         Category = "kernel"
	CategorySolver         Category = "solver"
	CategoryGraph          Category = "graph"
	CategoryRelational     Category = "relational"
	CategoryHTTP           Category = "http"
)

var (
	mu     sync.RWMutex
	root   *zap.Logger = zap.NewNop()
	named  = map[Category]*zap.Logger{}
)

// Init installs the process-wide root logger. verbose selects debug level,
// matching the teacher's --verbose flag in cmd/nerd/main.go.
func Init(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	mu.Lock()
	root = logger
	named = map[Category]*zap.Logger{}
	mu.Unlock()
	return logger, nil
}

// Sync flushes the root logger's buffered entries. Call on shutdown.
func Sync() {
	mu.RLock()
	l := root
	mu.RUnlock()
	_ = l.Sync()
}

// For returns the child logger for category, creating and caching it on
// first use.
func For(category Category) *zap.Logger {
	mu.RLock()
	if l, ok := named[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := named[category]; ok {
		return l
	}
	l := root.Named(string(category))
	named[category] = l
	return l
}

// StageTimer measures one pipeline stage's wall-clock duration, grounded on
// the teacher's logging.StartTimer idiom (internal/store/local_graph.go).
type StageTimer struct {
	category Category
	stage    string
	start    time.Time
}

// StartTimer begins timing stage under category.
func StartTimer(category Category, stage string) *StageTimer {
	return &StageTimer{category: category, stage: stage, start: time.Now()}
}

// Stop logs the elapsed duration at debug level and returns it.
func (t *StageTimer) Stop() time.Duration {
	d := time.Since(t.start)
	For(t.category).Debug("stage complete", zap.String("stage", t.stage), zap.Duration("duration", d))
	return d
}
