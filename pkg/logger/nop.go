package logger

// nopLogger discards everything; used in tests.
type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) InitLogger()                                {}
func (nopLogger) Debug(args ...interface{})                  {}
func (nopLogger) Debugf(template string, a ...interface{})   {}
func (nopLogger) Info(args ...interface{})                   {}
func (nopLogger) Infof(template string, a ...interface{})    {}
func (nopLogger) Warn(args ...interface{})                   {}
func (nopLogger) Warnf(template string, a ...interface{})    {}
func (nopLogger) Error(args ...interface{})                  {}
func (nopLogger) Errorf(template string, a ...interface{})   {}
func (nopLogger) Fatal(args ...interface{})                  {}
func (nopLogger) Fatalf(template string, a ...interface{})   {}
