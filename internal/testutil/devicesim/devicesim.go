// internal/testutil/devicesim/devicesim.go

// Package devicesim is an in-memory device that speaks the upload line protocol.
// It implements link.Channel so sessions can be tested without hardware.
package devicesim

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/CotynB/WizWatch/internal/link"
)

// Device emulates the SD uploader firmware.
// Behaviour knobs must be set before the session starts.
type Device struct {
	// ReadyOnReset is the 1-based reset count at which UPLOAD_READY is emitted.
	// 0 means the first reset. Negative means never.
	ReadyOnReset int

	// BootChatter is emitted after every reset, before UPLOAD_READY.
	BootChatter []string

	// RejectFile maps a file name to the error line answered to FILE:.
	RejectFile map[string]string

	// AckOverride maps a 0-based chunk index of the current file to the NEXT count reported.
	AckOverride map[int]int

	// MuteCommand silences the device when it receives this command ("FILE", "DATA", "END", "DONE").
	// For "DATA", MuteChunk selects the 0-based chunk index.
	MuteCommand string
	MuteChunk   int

	// FailEnd maps a file name to the error line answered to END.
	FailEnd map[string]string

	// Chatter lines are queued before every reply, like debug prints from the firmware.
	Chatter []string

	mu     sync.Mutex
	queue  []string
	lines  []string
	resets int
	closed bool
	muted  bool

	cur     string
	curSize int
	curData []byte
	chunk   int

	files map[string][]byte
}

// New returns a well-behaved device.
func New() *Device {
	return &Device{files: make(map[string][]byte)}
}

// ---- link.Channel ----

// WriteLine receives one host line and queues the device reply.
func (d *Device) WriteLine(line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return link.ErrClosed
	}
	d.lines = append(d.lines, line)
	if d.muted {
		return nil
	}
	d.handle(line)
	return nil
}

// ReadLine returns the next queued reply, or waits out timeout.
func (d *Device) ReadLine(timeout time.Duration) (string, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return "", link.ErrClosed
	}
	if len(d.queue) > 0 {
		line := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		return line, nil
	}
	d.mu.Unlock()

	time.Sleep(timeout)
	return "", link.ErrReadTimeout
}

// ResetDevice reboots into upload mode.
func (d *Device) ResetDevice() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return link.ErrClosed
	}

	d.resets++
	d.queue = nil
	d.muted = false
	d.cur, d.curData = "", nil

	d.queue = append(d.queue, d.BootChatter...)

	want := d.ReadyOnReset
	if want == 0 {
		want = 1
	}
	if want > 0 && d.resets >= want {
		d.queue = append(d.queue, "UPLOAD_READY")
	}
	return nil
}

// Close implements link.Channel.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// ---- inspection ----

// Lines returns every line the host wrote, in order.
func (d *Device) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lines...)
}

// Resets returns how many reset strobes were seen.
func (d *Device) Resets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets
}

// File returns the bytes stored under name after a confirmed END.
func (d *Device) File(name string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.files[name]
	return b, ok
}

// Closed reports whether the host closed the channel.
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// ---- firmware ----

func (d *Device) reply(lines ...string) {
	d.queue = append(d.queue, d.Chatter...)
	d.queue = append(d.queue, lines...)
}

func (d *Device) mute(cmd string) bool {
	if d.MuteCommand != cmd {
		return false
	}
	if cmd == "DATA" && d.MuteChunk != d.chunk {
		return false
	}
	d.muted = true
	return true
}

func (d *Device) handle(line string) {
	switch {
	case strings.HasPrefix(line, "FILE:"):
		if d.mute("FILE") {
			return
		}
		d.openFile(strings.TrimPrefix(line, "FILE:"))

	case strings.HasPrefix(line, "DATA:"):
		if d.mute("DATA") {
			return
		}
		d.data(strings.TrimPrefix(line, "DATA:"))

	case line == "END":
		if d.mute("END") {
			return
		}
		d.end()

	case line == "DONE":
		if d.mute("DONE") {
			return
		}
		d.reply("BYE")

	default:
		d.reply("ERROR:unknown command")
	}
}

func (d *Device) openFile(arg string) {
	i := strings.LastIndexByte(arg, ':')
	if i <= 0 {
		d.reply("ERROR:bad FILE line")
		return
	}
	name := arg[:i]
	size, err := strconv.Atoi(arg[i+1:])
	if err != nil || size < 0 {
		d.reply("ERROR:bad size")
		return
	}
	if msg, ok := d.RejectFile[name]; ok {
		d.reply(msg)
		return
	}

	d.cur, d.curSize, d.curData, d.chunk = name, size, make([]byte, 0, size), 0
	d.reply("READY")
}

func (d *Device) data(hexStr string) {
	if d.cur == "" {
		d.reply("ERROR:no open file")
		return
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		d.reply("ERROR:bad hex")
		return
	}

	d.curData = append(d.curData, raw...)

	n := len(raw)
	if v, ok := d.AckOverride[d.chunk]; ok {
		n = v
	}
	d.chunk++
	d.reply(fmt.Sprintf("NEXT:%d", n))
}

func (d *Device) end() {
	if d.cur == "" {
		d.reply("ERROR:no open file")
		return
	}
	name := d.cur
	d.cur = ""

	if msg, ok := d.FailEnd[name]; ok {
		d.reply(msg)
		return
	}
	if len(d.curData) != d.curSize {
		d.reply(fmt.Sprintf("ERROR:size mismatch %d/%d", len(d.curData), d.curSize))
		return
	}

	d.files[name] = d.curData
	d.reply(fmt.Sprintf("OK:%s %d", name, d.curSize))
}
