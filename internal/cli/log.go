package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Reconciled 42 packages (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks forwards pipeline and HTTP events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnPackageStart(_ context.Context, pkg string) {
	h.logger.Debug("reconciling", "package", pkg)
}

func (h *logHooks) OnPackageComplete(_ context.Context, pkg string, messages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("package failed", "package", pkg, "duration", d, "err", err)
		return
	}
	h.logger.Debug("package done", "package", pkg, "messages", messages, "duration", d)
}

func (h *logHooks) OnStepComplete(_ context.Context, pkg, step string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("step failed", "package", pkg, "step", step, "err", err)
		return
	}
	h.logger.Debug("step", "package", pkg, "step", step, "duration", d)
}

func (h *logHooks) OnFileParsed(_ context.Context, file string, refs int, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "file", file, "err", err)
		return
	}
	h.logger.Debug("parsed", "file", file, "refs", refs)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}
