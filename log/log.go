// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides leveled key/value logging on top of go-ethereum's slog based logger.
package log

import (
	"context"
	"log/slog"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes key/value pairs at a given level.
type Logger interface {
	// New returns a Logger that has this logger's attributes plus the given ctx.
	New(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// Crit logs and terminates the process.
	Crit(msg string, ctx ...any)

	Enabled(level slog.Level) bool
}

// FromLegacyLevel converts a legacy verbosity (0 crit .. 5 trace) into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return ethlog.FromLegacyLevel(lvl)
}

// SetDefault installs h as the handler of the root logger.
// Loggers created by WithContext pick the new handler up on their next call.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Root returns the root logger.
func Root() Logger {
	return &ethLogger{ethlog.Root()}
}

// NewLogger creates a logger writing to h, independent of the root logger.
func NewLogger(h slog.Handler) Logger {
	return &ethLogger{ethlog.NewLogger(h)}
}

// WithContext creates a package level logger. It is resolved against the root
// logger at call time, so it may be declared before SetDefault runs.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

type ethLogger struct {
	inner ethlog.Logger
}

func (l *ethLogger) New(ctx ...any) Logger        { return &ethLogger{l.inner.With(ctx...)} }
func (l *ethLogger) Trace(msg string, ctx ...any) { l.inner.Trace(msg, ctx...) }
func (l *ethLogger) Debug(msg string, ctx ...any) { l.inner.Debug(msg, ctx...) }
func (l *ethLogger) Info(msg string, ctx ...any)  { l.inner.Info(msg, ctx...) }
func (l *ethLogger) Warn(msg string, ctx ...any)  { l.inner.Warn(msg, ctx...) }
func (l *ethLogger) Error(msg string, ctx ...any) { l.inner.Error(msg, ctx...) }
func (l *ethLogger) Crit(msg string, ctx ...any)  { l.inner.Crit(msg, ctx...) }

func (l *ethLogger) Enabled(level slog.Level) bool {
	return l.inner.Enabled(context.Background(), level)
}

type lazyLogger struct {
	ctx      []any
	resolved atomic.Pointer[resolvedLogger]
}

type resolvedLogger struct {
	root  ethlog.Logger
	inner ethlog.Logger
}

func (l *lazyLogger) get() ethlog.Logger {
	root := ethlog.Root()
	if r := l.resolved.Load(); r != nil && r.root == root {
		return r.inner
	}
	r := &resolvedLogger{root, root.With(l.ctx...)}
	l.resolved.Store(r)
	return r.inner
}

func (l *lazyLogger) New(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(append(merged, l.ctx...), ctx...)
	return &lazyLogger{ctx: merged}
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.get().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.get().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.get().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.get().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.get().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.get().Crit(msg, ctx...) }

func (l *lazyLogger) Enabled(level slog.Level) bool {
	return l.get().Enabled(context.Background(), level)
}
