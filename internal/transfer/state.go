// internal/transfer/state.go
package transfer

// SessionState is the lifecycle of one device connection.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateResetting
	StateAwaitingSessionReady
	StateSessionReady
	StateTeardown
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateResetting:
		return "RESETTING"
	case StateAwaitingSessionReady:
		return "AWAITING_SESSION_READY"
	case StateSessionReady:
		return "SESSION_READY"
	case StateTeardown:
		return "TEARDOWN"
	default:
		return "UNKNOWN"
	}
}

// FileState is the lifecycle of one file upload.
type FileState int

const (
	FileIdle FileState = iota
	FileAwaitReady
	FileSending
	FileAwaitAck
	FileAwaitComplete
	FileDone
	FileFailed
)

func (s FileState) String() string {
	switch s {
	case FileIdle:
		return "IDLE"
	case FileAwaitReady:
		return "AWAIT_READY"
	case FileSending:
		return "SENDING"
	case FileAwaitAck:
		return "AWAIT_ACK"
	case FileAwaitComplete:
		return "AWAIT_COMPLETE"
	case FileDone:
		return "DONE"
	case FileFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Phase names a blocking wait, for errors and logs.
type Phase string

const (
	PhaseSessionReady Phase = "session-ready"
	PhaseFileReady    Phase = "file-ready"
	PhaseChunkAck     Phase = "chunk-ack"
	PhaseComplete     Phase = "complete"
	PhaseTeardown     Phase = "teardown"
)
