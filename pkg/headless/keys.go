package headless

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/joypad"
)

var buttons = map[string]joypad.Button{
	"a":      joypad.ButtonA,
	"b":      joypad.ButtonB,
	"select": joypad.ButtonSelect,
	"start":  joypad.ButtonStart,
	"right":  joypad.ButtonRight,
	"left":   joypad.ButtonLeft,
	"up":     joypad.ButtonUp,
	"down":   joypad.ButtonDown,
}

// KeyPress holds a button down from frame From up to, but not
// including, frame To.
type KeyPress struct {
	Button   joypad.Button
	From, To int
}

// Keys is a schedule of key presses.
type Keys []KeyPress

// ParseKeys parses a schedule written as comma separated
// button:from-to entries, e.g. "start:60-65,a:120". A single frame
// presses the button for that frame only.
func ParseKeys(s string) (Keys, error) {
	var keys Keys
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, frames, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("headless: key %q: missing frames", entry)
		}
		button, ok := buttons[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("headless: key %q: unknown button %q", entry, name)
		}

		from, to, ranged := strings.Cut(frames, "-")
		press := KeyPress{Button: button}
		var err error
		if press.From, err = strconv.Atoi(from); err != nil {
			return nil, fmt.Errorf("headless: key %q: %w", entry, err)
		}
		press.To = press.From + 1
		if ranged {
			if press.To, err = strconv.Atoi(to); err != nil {
				return nil, fmt.Errorf("headless: key %q: %w", entry, err)
			}
		}
		if press.To <= press.From {
			return nil, fmt.Errorf("headless: key %q: empty frame range", entry)
		}
		keys = append(keys, press)
	}
	return keys, nil
}

// At returns the keys held during the given frame.
func (k Keys) At(frame int) joypad.Keys {
	var pressed joypad.Keys
	for _, p := range k {
		if frame >= p.From && frame < p.To {
			pressed |= joypad.KeysOf(p.Button)
		}
	}
	return pressed
}
