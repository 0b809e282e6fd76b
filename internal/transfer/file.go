// internal/transfer/file.go
package transfer

import (
	"fmt"
)

// Progress is observable after each acknowledged chunk.
type Progress struct {
	File   string
	Chunk  int // 0-based index of the chunk just acknowledged
	Chunks int
	Sent   int
	Total  int
}

// Percent is Sent/Total as an integer percentage. An empty file is 100%.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	return p.Sent * 100 / p.Total
}

// ProgressFunc receives progress snapshots. It must not block.
type ProgressFunc func(Progress)

// FileResult describes one confirmed upload.
type FileResult struct {
	Name   string
	Bytes  int
	Chunks int
	Info   string // text after OK:
}

// fileTransfer is the per-file state; discarded when Upload returns.
type fileTransfer struct {
	name  string
	total int
	sent  int
	state FileState
}

// Upload runs one per-file cycle: open, chunked data with acknowledgments, completion.
// Any failure is final for the file and leaves the session unusable for further uploads.
func (s *Session) Upload(name string, data []byte) (FileResult, error) {
	if s.state != StateSessionReady {
		return FileResult{}, ErrNotReady
	}
	if s.broken {
		return FileResult{}, ErrSessionBroken
	}
	if err := ValidateFileName(name); err != nil {
		return FileResult{}, err
	}

	ft := &fileTransfer{name: name, total: len(data), state: FileIdle}

	res, err := s.upload(ft, data)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("file", name).
			Str("state", ft.state.String()).
			Int("sent", ft.sent).
			Int("total", ft.total).
			Msg("upload failed")
		ft.state = FileFailed
		s.broken = true
		return FileResult{}, err
	}

	ft.state = FileDone
	return res, nil
}

func (s *Session) upload(ft *fileTransfer, data []byte) (FileResult, error) {
	t := s.cfg.Timeouts
	log := s.log.With().Str("file", ft.name).Logger()

	// ---- IDLE -> AWAIT_READY ----

	if err := s.send(FileLine(ft.name, ft.total)); err != nil {
		return FileResult{}, fmt.Errorf("transfer: write file request %s: %w", ft.name, err)
	}
	ft.state = FileAwaitReady

	if _, err := awaitLine(s.ch, site{PhaseFileReady, ft.name, noChunk}, t.FileReady, expectExact(LineReady), log); err != nil {
		return FileResult{}, err
	}

	log.Info().Int("bytes", ft.total).Msg("uploading")

	// ---- SENDING <-> AWAIT_ACK ----

	chunks := Chunks(data, ChunkSize)
	for i, chunk := range chunks {
		ft.state = FileSending
		if err := s.send(DataLine(chunk)); err != nil {
			return FileResult{}, fmt.Errorf("transfer: write chunk %d of %s: %w", i, ft.name, err)
		}

		ft.state = FileAwaitAck
		line, err := awaitLine(s.ch, site{PhaseChunkAck, ft.name, i}, t.ChunkAck, expectPrefix(PrefixNext), log)
		if err != nil {
			return FileResult{}, err
		}

		acked, perr := ParseNext(line)
		if perr != nil {
			return FileResult{}, &IntegrityError{File: ft.name, Chunk: i, Sent: len(chunk), Acked: -1, Line: line}
		}
		if acked != len(chunk) {
			return FileResult{}, &IntegrityError{File: ft.name, Chunk: i, Sent: len(chunk), Acked: acked, Line: line}
		}

		ft.sent += len(chunk)
		p := Progress{File: ft.name, Chunk: i, Chunks: len(chunks), Sent: ft.sent, Total: ft.total}
		log.Debug().Int("sent", p.Sent).Int("total", p.Total).Int("pct", p.Percent()).Msg("chunk acknowledged")
		if s.cfg.Progress != nil {
			s.cfg.Progress(p)
		}
	}

	// ---- AWAIT_COMPLETE ----

	if err := s.send(CmdEnd); err != nil {
		return FileResult{}, fmt.Errorf("transfer: write end of %s: %w", ft.name, err)
	}
	ft.state = FileAwaitComplete

	line, err := awaitLine(s.ch, site{PhaseComplete, ft.name, noChunk}, t.Complete, expectPrefix(PrefixOK), log)
	if err != nil {
		return FileResult{}, err
	}

	info := line[len(PrefixOK):]
	log.Info().Int("bytes", ft.sent).Str("device", info).Msg("file accepted")

	return FileResult{
		Name:   ft.name,
		Bytes:  ft.sent,
		Chunks: len(chunks),
		Info:   info,
	}, nil
}
