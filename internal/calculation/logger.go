package calculation

// Logger is the minimal logging surface used by the orchestrating calculators.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
