package errors

type ExitCode int

// Exit codes keep scripted callers able to branch on the failure class.
// 64/65 follow the sysexits usage/config convention; the rest are ours.
const (
	AmbiguousDeploymentExitCode ExitCode = 64
	ProfileUnresolvedExitCode   ExitCode = 65

	RemoteOperationFailedExitCode ExitCode = 70

	TimeoutExitCode ExitCode = 72

	PollingUnreliableExitCode ExitCode = 73
)

// CodeOf maps an error to the process exit status. Anything that does not
// carry its own code is a generic failure.
func CodeOf(err error) ExitCode {
	if err == nil {
		return 0
	}
	for e := err; e != nil; {
		if coder, ok := e.(ExitCoder); ok {
			return coder.GetExitCode()
		}
		unwrapper, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = unwrapper.Unwrap()
	}
	return 1
}
