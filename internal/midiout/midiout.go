// Package midiout mirrors the roll to a live MIDI output port, so
// toggled notes can be auditioned through external hardware or
// software synths alongside the built-in engine.
package midiout

import (
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const (
	auditionChannel  = uint8(0)
	auditionVelocity = uint8(100)
	auditionLength   = 200 * time.Millisecond
)

// Outputs lists the names of the currently available MIDI output
// ports, in the order Open indexes them.
func Outputs() []string {
	var names []string
	for _, out := range midi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// A Port is an open MIDI output.
type Port struct {
	out  drivers.Out
	send func(midi.Message) error
}

// Open connects to the output port at index, as ordered by Outputs.
func Open(index int) (*Port, error) {
	outs := midi.GetOutPorts()
	if index < 0 || index >= len(outs) {
		return nil, fmt.Errorf("no MIDI output at index %d", index)
	}
	send, err := midi.SendTo(outs[index])
	if err != nil {
		return nil, fmt.Errorf("opening MIDI port %s: %w", outs[index].String(), err)
	}
	return &Port{out: outs[index], send: send}, nil
}

// Name returns the port's display name.
func (p *Port) Name() string { return p.out.String() }

// Audition plays a short preview of a MIDI note. Send errors are
// swallowed; a dead port only costs the preview.
func (p *Port) Audition(note uint8) {
	send := p.send
	if send == nil {
		return
	}
	_ = send(midi.NoteOn(auditionChannel, note, auditionVelocity))
	time.AfterFunc(auditionLength, func() {
		_ = send(midi.NoteOff(auditionChannel, note))
	})
}

// Close sends all-notes-off and releases the port. Safe to call more
// than once.
func (p *Port) Close() {
	if p.out == nil {
		return
	}
	_ = p.send(midi.ControlChange(auditionChannel, 123, 0)) // all notes off
	_ = p.out.Close()
	p.out = nil
	p.send = nil
}
