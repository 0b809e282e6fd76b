// internal/uploader/uploader.go
package uploader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/CotynB/WizWatch/internal/asset"
	"github.com/CotynB/WizWatch/internal/blob"
	"github.com/CotynB/WizWatch/internal/transfer"
)

// ErrNoAssets is returned when there is nothing to upload.
var ErrNoAssets = errors.New("uploader: no assets to upload")

// NameError means an output file name cannot be sent to the device.
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("uploader: output name %s: %v", e.Name, e.Err)
}

func (e *NameError) Unwrap() error { return e.Err }

// ErrDuplicateName means two sources compile to the same output file.
var ErrDuplicateName = errors.New("duplicate output name")

// Session abstracts the transfer operations the orchestrator needs.
type Session interface {
	Upload(name string, data []byte) (transfer.FileResult, error)
	Close() error
}

// Connector opens one device session. Reset retries happen inside; the orchestrator never retries.
type Connector func() (Session, error)

// Compiled is one blob ready for transfer.
type Compiled struct {
	Name string // output name on the device
	Data []byte
}

// FileReport is the outcome of one confirmed upload.
type FileReport struct {
	Name   string
	Bytes  int
	Chunks int
}

// Report aggregates one run.
type Report struct {
	Files     []FileReport
	BytesSent int
	Failed    string // output name of the file that stopped the run, if any
}

// OK is true when nothing failed.
func (r Report) OK() bool { return r.Failed == "" }

// Uploader drives compile + sequential transfer for one asset set.
type Uploader struct {
	connect Connector
	log     zerolog.Logger
}

// New creates an uploader around a session connector.
func New(connect Connector, log zerolog.Logger) (*Uploader, error) {
	if connect == nil {
		return nil, errors.New("uploader: connector required")
	}
	return &Uploader{connect: connect, log: log}, nil
}

// Run compiles every asset, then uploads them over one session in output-name order.
// All-or-nothing: a compile failure aborts before the device is touched,
// and the first transfer failure stops the run.
func (u *Uploader) Run(assets []asset.Asset) (Report, error) {
	var rep Report

	blobs, err := Compile(assets)
	if err != nil {
		var fe *blob.FormatError
		var ne *NameError
		switch {
		case errors.As(err, &fe):
			rep.Failed = fe.Asset + asset.OutputExt
		case errors.As(err, &ne):
			rep.Failed = ne.Name
		}
		return rep, err
	}

	sess, err := u.connect()
	if err != nil {
		return rep, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			u.log.Warn().Err(cerr).Msg("session teardown failed")
		}
	}()

	for i, b := range blobs {
		u.log.Info().
			Str("file", b.Name).
			Int("index", i+1).
			Int("count", len(blobs)).
			Msg("starting file")

		res, err := sess.Upload(b.Name, b.Data)
		if err != nil {
			rep.Failed = b.Name
			return rep, fmt.Errorf("upload %s: %w", b.Name, err)
		}

		rep.Files = append(rep.Files, FileReport{Name: res.Name, Bytes: res.Bytes, Chunks: res.Chunks})
		rep.BytesSent += res.Bytes
	}

	return rep, nil
}

// Compile sorts assets by output name and compiles them all.
// No IO. Any failure discards every blob.
func Compile(assets []asset.Asset) ([]Compiled, error) {
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}

	sorted := make([]asset.Asset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OutputName() < sorted[j].OutputName()
	})

	out := make([]Compiled, 0, len(sorted))
	for i, a := range sorted {
		name := a.OutputName()

		if i > 0 && sorted[i-1].OutputName() == name {
			return nil, &NameError{Name: name, Err: ErrDuplicateName}
		}
		if err := transfer.ValidateFileName(name); err != nil {
			return nil, &NameError{Name: name, Err: err}
		}

		data, err := blob.Compile(a)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		out = append(out, Compiled{Name: name, Data: data})
	}

	return out, nil
}
