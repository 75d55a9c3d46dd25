package gobangla

import (
	"sync/atomic"
	"unicode"
)

// Edit is text after an input event with the caret's new position.
// Caret positions count characters (runes), not bytes.
type Edit struct {
	Text  string
	Caret int
}

// InputSession converts text as it is typed into one input field.
// Phonetic mode can be flipped from any goroutine.
type InputSession struct {
	engine  *Engine
	enabled atomic.Bool
}

// NewInputSession session over engine, phonetic mode on
func NewInputSession(engine *Engine) *InputSession {
	session := &InputSession{engine: engine}
	session.enabled.Store(true)
	return session
}

// Enable phonetic mode
func (session *InputSession) Enable() {
	session.enabled.Store(true)
}

// Disable phonetic mode. Input is then left as typed.
func (session *InputSession) Disable() {
	session.enabled.Store(false)
}

// Toggle phonetic mode, returns the new state
func (session *InputSession) Toggle() bool {
	for {
		old := session.enabled.Load()
		if session.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Enabled tells if phonetic mode is on
func (session *InputSession) Enabled() bool {
	return session.enabled.Load()
}

func clampCaret(caret int, length int) int {
	if caret < 0 {
		return 0
	}
	if caret > length {
		return length
	}
	return caret
}

// OnSpace handles a space typed at caret. The word just before caret
// is converted and the space inserted after it.
func (session *InputSession) OnSpace(text string, caret int) Edit {
	runes := []rune(text)
	caret = clampCaret(caret, len(runes))

	start := caret
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}

	word := string(runes[start:caret])
	if session.Enabled() && word != "" {
		word = session.engine.Convert(word)
	}

	newText := string(runes[:start]) + word + " " + string(runes[caret:])

	return Edit{
		Text:  newText,
		Caret: start + charCount(word) + 1,
	}
}

// OnPaste handles clip pasted at caret. The whole clip is converted.
func (session *InputSession) OnPaste(text string, caret int, clip string) Edit {
	runes := []rune(text)
	caret = clampCaret(caret, len(runes))

	if session.Enabled() {
		clip = session.engine.Convert(clip)
	}

	return Edit{
		Text:  string(runes[:caret]) + clip + string(runes[caret:]),
		Caret: caret + charCount(clip),
	}
}
