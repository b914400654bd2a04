// Package log is the ambient structured-logging layer demo binaries wire
// up: zap underneath, exposed through logr's leveled interface via zapr,
// the same pairing the retrieval pack's issuer/wallet services use.
package log

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// Log wraps logr.Logger with the Info/Debug/Trace verbosity levels the
// surrounding services use.
type Log struct {
	logr.Logger
}

// New builds a production or development zap logger named name.
func New(name string, production bool) (*Log, error) {
	var zc zap.Config
	if production {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.DisableCaller = true
	zc.DisableStacktrace = true

	z, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return &Log{Logger: zapr.NewLogger(z).WithName(name)}, nil
}

// NewSimple builds a logger against the global zap logger, for quick demos.
func NewSimple(name string) *Log {
	return &Log{Logger: zapr.NewLogger(zap.L().Named(name))}
}

func (l *Log) Info(msg string, kv ...any) {
	l.Logger.V(0).WithValues(kv...).Info(msg)
}

func (l *Log) Debug(msg string, kv ...any) {
	l.Logger.V(1).WithValues(kv...).Info(msg)
}

func (l *Log) Trace(msg string, kv ...any) {
	l.Logger.V(2).WithValues(kv...).Info(msg)
}
