// Package logrusadapter bridges the pipeline's Logger interface to a
// sirupsen/logrus logger so applications can reuse their existing logging
// configuration.
package logrusadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/wudi/notekit/observability"
)

type adapter struct {
	entry *logrus.Entry
}

// New wraps a logrus logger as an observability.Logger. A nil logger uses
// the logrus standard logger.
func New(logger *logrus.Logger) observability.Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return adapter{entry: logrus.NewEntry(logger)}
}

func (a adapter) Debug(msg string, fields ...observability.Field) {
	a.entry.WithFields(toLogrus(fields)).Debug(msg)
}

func (a adapter) Info(msg string, fields ...observability.Field) {
	a.entry.WithFields(toLogrus(fields)).Info(msg)
}

func (a adapter) Warn(msg string, fields ...observability.Field) {
	a.entry.WithFields(toLogrus(fields)).Warn(msg)
}

func (a adapter) Error(msg string, fields ...observability.Field) {
	a.entry.WithFields(toLogrus(fields)).Error(msg)
}

func (a adapter) With(fields ...observability.Field) observability.Logger {
	return adapter{entry: a.entry.WithFields(toLogrus(fields))}
}

func toLogrus(fields []observability.Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key()] = f.Value()
	}
	return out
}
