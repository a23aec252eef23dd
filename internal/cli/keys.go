package cli

// key is a decoded terminal key press.
type key int

const (
	keyRune key = iota
	keyEnter
	keyBackspace
	keyTab
	keyShiftTab
	keyUp
	keyDown
	keyLeft
	keyRight
	keyCtrlC
	keyCtrlD
	keyUnknown
)

type keyEvent struct {
	k key
	r rune
}

// decodeKeys splits a chunk read from a raw terminal into key presses.
// Only printable ASCII is inserted; other bytes map to keyUnknown.
func decodeKeys(b []byte) []keyEvent {
	var out []keyEvent
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == 3:
			out = append(out, keyEvent{k: keyCtrlC})
		case c == 4:
			out = append(out, keyEvent{k: keyCtrlD})
		case c == '\r' || c == '\n':
			out = append(out, keyEvent{k: keyEnter})
		case c == 127 || c == 8:
			out = append(out, keyEvent{k: keyBackspace})
		case c == '\t':
			out = append(out, keyEvent{k: keyTab})
		case c == 27:
			if i+2 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
				out = append(out, keyEvent{k: csiKey(b[i+2])})
				i += 2
				continue
			}
			out = append(out, keyEvent{k: keyUnknown})
		case c >= 32 && c <= 126:
			out = append(out, keyEvent{k: keyRune, r: rune(c)})
		default:
			out = append(out, keyEvent{k: keyUnknown})
		}
	}
	return out
}

func csiKey(c byte) key {
	switch c {
	case 'A':
		return keyUp
	case 'B':
		return keyDown
	case 'C':
		return keyRight
	case 'D':
		return keyLeft
	case 'Z':
		return keyShiftTab
	default:
		return keyUnknown
	}
}
