// internal/transfer/protocol.go
package transfer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Wire protocol tokens. Every message is one line.
// These values are shared with the device firmware and MUST NOT be configurable.

// ---- DEVICE -> HOST ----

const (
	LineUploadReady = "UPLOAD_READY" // session handshake complete
	LineReady       = "READY"        // ready for the first chunk
	PrefixNext      = "NEXT:"        // NEXT:<decodedByteCount>
	PrefixOK        = "OK:"          // OK:<info>, file accepted
	PrefixError     = "ERROR"        // ERROR<...>, any phase
)

// ---- HOST -> DEVICE ----

const (
	PrefixFile = "FILE:" // FILE:<name>:<size>
	PrefixData = "DATA:" // DATA:<hex>
	CmdEnd     = "END"
	CmdDone    = "DONE"
)

// ChunkSize is the raw byte count per DATA line (128 hex chars on the wire).
const ChunkSize = 64

var errBadFileName = errors.New("transfer: invalid file name")

// FileLine builds the file-open request.
func FileLine(name string, size int) string {
	return fmt.Sprintf("%s%s:%d", PrefixFile, name, size)
}

// DataLine hex-encodes one chunk.
func DataLine(chunk []byte) string {
	return PrefixData + hex.EncodeToString(chunk)
}

// ParseNext extracts the decoded byte count from a NEXT: line.
func ParseNext(line string) (int, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(line, PrefixNext))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("transfer: bad acknowledgment %q: %w", line, err)
	}
	return n, nil
}

// ValidateFileName rejects names the line framing cannot carry.
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", errBadFileName)
	}
	if strings.ContainsAny(name, ":\r\n") {
		return fmt.Errorf("%w: %q contains ':' or a line break", errBadFileName, name)
	}
	return nil
}

func isErrorLine(line string) bool {
	return strings.HasPrefix(line, PrefixError)
}
