package install

import (
	"errors"
	"fmt"
)

// Step names one stage of an install.
type Step string

const (
	StepPrecondition Step = "precondition"
	StepDownload     Step = "download"
	StepExtract      Step = "extract"
	StepLaunch       Step = "launch"
	StepCleanup      Step = "cleanup"
)

var (
	// ErrAlreadyInstalled means the destination bundle already exists.
	ErrAlreadyInstalled = errors.New("already installed")
	// ErrNetworkFault covers transport failures, unexpected status codes and
	// bodies that do not match the advertised length or checksum.
	ErrNetworkFault = errors.New("network fault")
	// ErrExtractionFault covers invalid archives, a failing extractor and a
	// missing bundle after extraction.
	ErrExtractionFault = errors.New("extraction fault")
	// ErrLaunchFault is reported but never fails an install.
	ErrLaunchFault = errors.New("launch fault")
	// ErrLocked means another installer holds the install lock.
	ErrLocked = errors.New("another install is in progress")
)

// Error wraps one of the fault sentinels with the step it occurred in
// and, when there is one, the underlying cause.
type Error struct {
	Step   Step
	Detail string
	Err    error
	Cause  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Step, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.Cause}
}

// AlreadyInstalledMessage is printed when the destination already exists.
func AlreadyInstalledMessage(appName string) string {
	return fmt.Sprintf("Found an existing version of %s. To update, remove that version.", appName)
}
