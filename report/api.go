package report

import (
	"fmt"
	"os"
)

// ReportError reports an error with a categorizing tag.
func ReportError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel >= LogLevelError {
		displayErrorMessage(tag, err.Error())
	}
}

// ReportWarning reports a warning with a categorizing tag.
func ReportWarning(tag, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarning {
		displayWarningMessage(tag, msg)
	}
}

// ReportInfo reports an informational message with a categorizing tag.
// These messages only display at the verbose log level.
func ReportInfo(tag, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayInfoMessage(tag, msg)
	}
}

// ReportFatal reports a fatal error and exits the program.  It
// automatically formats the message as necessary.
func ReportFatal(msg string, args ...interface{}) {
	displayErrorMessage("Fatal Error", fmt.Sprintf(msg, args...))
	os.Exit(1)
}

// ReportICE reports an internal compiler error: a condition that is never
// supposed to happen.  These are always displayed regardless of log level.
func ReportICE(msg string, args ...interface{}) {
	displayErrorMessage("Internal Error", fmt.Sprintf(msg, args...))
	fmt.Println("This error is a bug: please open an issue")
	os.Exit(-1)
}
