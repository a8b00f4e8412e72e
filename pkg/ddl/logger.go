// SPDX-License-Identifier: Apache-2.0

package ddl

import "github.com/pterm/pterm"

// Logger is responsible for logging the lifecycle of a plan's execution,
// adapted from the teacher's pkg/migrations.Logger, trimmed to this
// engine's single-phase execution model (no separate rollback-complete
// event, since a failed plan's transaction is simply rolled back whole).
type Logger interface {
	LogOperationStart(op Operation)
	LogOperationComplete(op Operation)
	LogOperationRollback(op Operation, err error)

	Info(msg string, args ...any)
}

type pluginLogger struct {
	logger pterm.Logger
}

type noopLogger struct{}

// NewLogger returns a Logger backed by pterm's structured logger, matching
// the teacher's default logging stack.
func NewLogger() Logger {
	return &pluginLogger{logger: pterm.DefaultLogger}
}

// NewNoopLogger returns a Logger that discards everything, for tests.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (l *pluginLogger) LogOperationStart(op Operation) {
	l.logger.Info("starting operation", l.logger.Args("operation", opName(op)))
}

func (l *pluginLogger) LogOperationComplete(op Operation) {
	l.logger.Info("completed operation", l.logger.Args("operation", opName(op)))
}

func (l *pluginLogger) LogOperationRollback(op Operation, err error) {
	l.logger.Warn("rolled back operation", l.logger.Args("operation", opName(op), "error", err))
}

func (l *pluginLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, l.logger.Args(args...))
}

func (l *noopLogger) LogOperationStart(Operation)          {}
func (l *noopLogger) LogOperationComplete(Operation)       {}
func (l *noopLogger) LogOperationRollback(Operation, error) {}
func (l *noopLogger) Info(msg string, args ...any)          {}

func opName(op Operation) string {
	type named interface{ OpName() string }
	if n, ok := op.(named); ok {
		return n.OpName()
	}
	return "operation"
}
