// config.go

package kernelshap

// LogLevel controls which of LogDebug/LogInfo/LogWarning actually print.
// kernelshap never exits the process on an internal error — callers always
// get an error return instead, so there is no LogLevelFatal here.
type LogLevel int

const (
	// LogLevelDebug is the log level for debug messages.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the log level for info messages.
	LogLevelInfo
	// LogLevelWarning is the log level for warning messages.
	LogLevelWarning
	// LogLevelSilent suppresses all of the package's own log output.
	LogLevelSilent
)

type configStruct struct {
	logLevel LogLevel
}

// Config is the package-level logging configuration. It is a singleton
// rather than threaded through every call.
var Config *configStruct = &configStruct{}

func (c *configStruct) SetLogLevel(level LogLevel) {
	c.logLevel = level
}

func (c *configStruct) GetLogLevel() LogLevel {
	return c.logLevel
}

// SetDefaultConfig resets Config to its defaults (log level LogLevelInfo).
func SetDefaultConfig() {
	Config.logLevel = LogLevelInfo
}

func init() {
	SetDefaultConfig()
}
