package report

import "sync"

// reporter is responsible for reporting errors, warnings, and informational
// messages during a run.  It respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type reporter struct {
	// The mutex used to synchronize report calls.
	m *sync.Mutex

	// The selected log level.  Must be one of the enumerated log levels.
	logLevel int

	// errorCount is the number of errors reported so far.
	errorCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors.
	LogLevelWarning        // Displays warnings and errors.
	LogLevelVerbose        // Displays all messages (default).
)

// rep is the global reporter instance.
var rep = reporter{
	m:        &sync.Mutex{},
	logLevel: LogLevelVerbose,
}

// InitReporter initializes the global reporter with the given log level.
func InitReporter(logLevel int) {
	rep = reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// LogLevelFromString translates a log level name from the command line into
// its enumerated value.  Unknown names map to the verbose default.
func LogLevelFromString(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarning
	default:
		return LogLevelVerbose
	}
}

// ShouldProceed indicates whether any errors have been reported that should
// stop the current phase.
func ShouldProceed() bool {
	return rep.errorCount == 0
}
