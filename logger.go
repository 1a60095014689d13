package kernelshap

import "log"

// LogWarning prints a warning-level message when Config's log level permits
// it. kernelshap never exits the process from within the library (see
// DESIGN.md); failures reach callers as error returns, and logging is
// purely advisory.
func LogWarning(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelWarning {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("[kernelshap - Warning] "+msg, args...)
}

func LogDebug(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelDebug {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("<kernelshap - Debug> "+msg, args...)
}

func LogInfo(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelInfo {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("[kernelshap - Info] "+msg, args...)
}
