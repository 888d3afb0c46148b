package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUnpairedKey = errors.New("unpaired log key")

type impl struct {
	name  string
	level AtomicLevel
	inUTC bool

	appenders []Appender
}

func newImpl(name string, level Level, inUTC bool, appenders ...Appender) *impl {
	return &impl{
		name:      name,
		level:     NewAtomicLevelAt(level),
		inUTC:     inUTC,
		appenders: appenders,
	}
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

// Sublogger shares the appenders of its parent. It starts at the parent's current level, but
// the two levels change independently afterwards.
func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return newImpl(name, imp.level.Get(), imp.inUTC, imp.appenders...)
}

func (imp *impl) Sync() error {
	var errs error
	for _, appender := range imp.appenders {
		errs = multierr.Append(errs, appender.Sync())
	}
	return errs
}

// AsZap returns a zap logger writing to the same appenders, for libraries that want one.
func (imp *impl) AsZap() *zap.SugaredLogger {
	return zap.New(appenderCore{imp: imp}, zap.AddCaller()).Sugar().Named(imp.name)
}

// enabled reports whether a statement at level is logged. A debug GlobalLogLevel turns on
// everything.
func (imp *impl) enabled(level Level) bool {
	return GlobalLogLevel.Enabled(zapcore.DebugLevel) || level >= imp.level.Get()
}

// write hands an entry to every appender. It must be called exactly two frames below the
// public logging method so the caller is attributed correctly.
func (imp *impl) write(level Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		Level:      level.AsZap(),
		Time:       time.Now(),
		LoggerName: imp.name,
		Message:    msg,
		Caller:     getCaller(),
	}
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func (imp *impl) print(level Level, args []interface{}) {
	if imp.enabled(level) {
		imp.write(level, fmt.Sprint(args...), nil)
	}
}

func (imp *impl) printf(level Level, template string, args []interface{}) {
	if imp.enabled(level) {
		imp.write(level, fmt.Sprintf(template, args...), nil)
	}
}

func (imp *impl) printw(level Level, msg string, keysAndValues []interface{}) {
	if imp.enabled(level) {
		imp.write(level, msg, toFields(keysAndValues))
	}
}

// fatal logs at ERROR regardless of the level and exits.
func (imp *impl) fatal(msg string, fields []zapcore.Field) {
	imp.write(ERROR, msg, fields)
	os.Exit(1)
}

// toFields pairs up alternating keys and values. Keys are printed with fmt, values are JSON
// serialized when written so only public struct fields show up. A trailing key without a value
// is kept with an error value rather than dropped.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.NamedError(key, errUnpairedKey))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (imp *impl) Debug(args ...interface{}) { imp.print(DEBUG, args) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.printf(DEBUG, template, args) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) { imp.printw(DEBUG, msg, keysAndValues) }

func (imp *impl) Info(args ...interface{}) { imp.print(INFO, args) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.printf(INFO, template, args) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) { imp.printw(INFO, msg, keysAndValues) }

func (imp *impl) Warn(args ...interface{}) { imp.print(WARN, args) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.printf(WARN, template, args) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) { imp.printw(WARN, msg, keysAndValues) }

func (imp *impl) Error(args ...interface{}) { imp.print(ERROR, args) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.printf(ERROR, template, args) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) { imp.printw(ERROR, msg, keysAndValues) }

func (imp *impl) Fatal(args ...interface{}) { imp.fatal(fmt.Sprint(args...), nil) }

func (imp *impl) Fatalf(template string, args ...interface{}) {
	imp.fatal(fmt.Sprintf(template, args...), nil)
}

func (imp *impl) Fatalw(msg string, keysAndValues ...interface{}) {
	imp.fatal(msg, toFields(keysAndValues))
}

// getCaller returns the location of the statement that called the public logging method, e.g.
// "logging/impl_test.go:36" once formatted.
func getCaller() zapcore.EntryCaller {
	// getCaller, write, print*, the public method, then the statement.
	const skipToLogCaller = 4
	pc, file, line, ok := runtime.Caller(skipToLogCaller)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}

// appenderCore adapts a logger's appenders to zapcore.Core.
type appenderCore struct {
	imp    *impl
	fields []zapcore.Field
}

func (c appenderCore) Enabled(level zapcore.Level) bool {
	return c.imp.enabled(LevelFromZap(level))
}

func (c appenderCore) With(fields []zapcore.Field) zapcore.Core {
	return appenderCore{imp: c.imp, fields: append(append([]zapcore.Field{}, c.fields...), fields...)}
}

func (c appenderCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	all := append(append([]zapcore.Field{}, c.fields...), fields...)
	var errs error
	for _, appender := range c.imp.appenders {
		errs = multierr.Append(errs, appender.Write(entry, all))
	}
	return errs
}

func (c appenderCore) Sync() error {
	return c.imp.Sync()
}
