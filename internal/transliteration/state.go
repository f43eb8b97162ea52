package transliteration

type stateKind uint8

const (
	stateInit stateKind = iota
	stateRawToggle
	stateRawText
	stateKanaToggle
	stateSizeRouter
	stateLong
	stateMedium
	stateSokuon
	stateSmallVowel
	stateShort
	stateTiny
	stateChouonpu
	statePunctuation
	stateVirtualStop
	stateFallback
)

var stateNames = [...]string{
	stateInit:        "Init",
	stateRawToggle:   "RawToggle",
	stateRawText:     "RawText",
	stateKanaToggle:  "KanaToggle",
	stateSizeRouter:  "SizeRouter",
	stateLong:        "Long",
	stateMedium:      "Medium",
	stateSokuon:      "Sokuon",
	stateSmallVowel:  "SmallVowel",
	stateShort:       "Short",
	stateTiny:        "Tiny",
	stateChouonpu:    "Chouonpu",
	statePunctuation: "Punctuation",
	stateVirtualStop: "VirtualStop",
	stateFallback:    "Fallback",
}

func (k stateKind) String() string { return stateNames[k] }

// shorter is where a syllable window goes when it finds no match.
var shorter = map[stateKind]stateKind{
	stateLong:   stateMedium,
	stateMedium: stateSokuon,
	stateShort:  stateTiny,
	stateTiny:   stateVirtualStop,
}

// state is a parser state. toggle is only set for RawText; size and
// fallback only for Punctuation.
type state struct {
	kind     stateKind
	toggle   rune
	size     int
	fallback stateKind
}

func (s state) window() int {
	switch s.kind {
	case stateSizeRouter:
		return 0
	case stateSokuon, stateSmallVowel, stateShort, stateChouonpu:
		return 2
	case stateMedium:
		return 3
	case stateLong:
		return 4
	case statePunctuation:
		return s.size
	default:
		return 1
	}
}

var initState = state{kind: stateInit}

// next runs one transition. It returns the emitted fragment, the updated
// cursor and the following state. The final result is false once Init
// sees an empty cursor.
func (s state) next(in input) (string, input, state, bool) {
	romaji := in.romaji
	size := s.window()

	switch s.kind {
	case stateInit:
		if romaji == "" {
			return "", in, s, false
		}
		return "", in, state{kind: stateRawToggle}, true

	case stateRawToggle:
		if t, ok := in.special(RawTextToggle); ok && startsWith(romaji, t) {
			in.romaji = sliceFrom(romaji, size)
			return "", in, state{kind: stateRawText, toggle: t}, true
		}
		return "", in, state{kind: stateKanaToggle}, true

	case stateRawText:
		in.romaji = sliceFrom(romaji, size)
		if startsWith(romaji, s.toggle) {
			return "", in, state{kind: stateRawToggle}, true
		}
		if in.romaji == "" {
			return sliceTo(romaji, size), in, initState, true
		}
		return sliceTo(romaji, size), in, s, true

	case stateKanaToggle:
		if t, ok := in.special(KanaToggle); ok && startsWith(romaji, t) {
			in.kanas.flip()
			in.romaji = sliceFrom(romaji, size)
			return "", in, initState, true
		}
		return "", in, state{kind: stateSizeRouter}, true

	case stateSizeRouter:
		switch n := countChars(romaji); {
		case n >= 4:
			return "", in, state{kind: stateLong}, true
		case n == 3:
			return "", in, state{kind: stateMedium}, true
		case n == 2:
			return "", in, state{kind: stateSokuon}, true
		case n == 1:
			return "", in, state{kind: stateTiny}, true
		default:
			return "", in, initState, true
		}

	case stateLong, stateMedium, stateShort:
		if glyph, ok := in.kanas.current().get(sliceTo(romaji, size)); ok {
			// The last character stays for the prolongation check.
			in.romaji = sliceFrom(romaji, size-1)
			return glyph, in, state{kind: stateChouonpu}, true
		}
		return "", in, in.miss(size, shorter[s.kind]), true

	case stateSokuon:
		if glyph, ok := in.kanas.current().sokuon(sliceTo(romaji, size)); ok {
			in.romaji = sliceFrom(romaji, size-1)
			return glyph, in, initState, true
		}
		return "", in, state{kind: stateSmallVowel}, true

	case stateSmallVowel:
		window := sliceTo(romaji, size)
		if t, ok := in.special(SmallVowel); ok && startsWith(window, t) {
			if glyph, ok := in.kanas.current().smallVowel(sliceFrom(window, 1)); ok {
				in.romaji = sliceFrom(romaji, size-1)
				return glyph, in, state{kind: stateChouonpu}, true
			}
		}
		return "", in, state{kind: stateShort}, true

	case stateTiny:
		if glyph, ok := in.kanas.current().get(sliceTo(romaji, size)); ok {
			return glyph, in, state{kind: stateChouonpu}, true
		}
		return "", in, in.miss(size, shorter[s.kind]), true

	case stateChouonpu:
		if r, ok := in.special(ResetProlongation); ok && startsWith(sliceFrom(romaji, 1), r) {
			in.romaji = sliceFrom(romaji, size)
			return "", in, initState, true
		}
		window := sliceTo(romaji, size)
		in.romaji = sliceFrom(romaji, size-1)
		if glyph, ok := in.kanas.current().chouonpu(window); ok {
			return glyph, in, s, true
		}
		return "", in, initState, true

	case statePunctuation:
		return in.punctuate(romaji, size, state{kind: s.fallback})

	case stateVirtualStop:
		if t, ok := in.special(VirtualStop); ok && startsWith(romaji, t) {
			in.romaji = sliceFrom(romaji, size)
			return in.kanas.current().sokuonLiteral(), in, initState, true
		}
		return "", in, state{kind: stateFallback}, true

	case stateFallback:
		in.romaji = sliceFrom(romaji, size)
		return sliceTo(romaji, size), in, initState, true
	}

	panic("transliteration: unhandled state " + s.kind.String())
}

// miss picks the state after a failed syllable lookup. Punctuation is only
// probed when it is enabled.
func (in input) miss(size int, next stateKind) state {
	if in.punctuation == nil {
		return state{kind: next}
	}
	return state{kind: statePunctuation, size: size, fallback: next}
}

func (in input) punctuate(romaji string, size int, fallback state) (string, input, state, bool) {
	p := in.punctuation
	if p == nil {
		return "", in, fallback, true
	}

	window := sliceTo(romaji, size)
	switch window {
	case "'":
		glyph := p.singleQuotes.current()
		p.singleQuotes.flip()
		in.romaji = sliceFrom(romaji, 1)
		return glyph, in, initState, true
	case `"`:
		glyph := p.doubleQuotes.current()
		p.doubleQuotes.flip()
		in.romaji = sliceFrom(romaji, 1)
		return glyph, in, initState, true
	}

	if glyph, ok := in.marks[window]; ok {
		in.romaji = sliceFrom(romaji, size)
		return glyph, in, initState, true
	}
	return "", in, fallback, true
}
