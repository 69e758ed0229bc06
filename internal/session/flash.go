package session

import (
	"encoding/gob"
	"net/http"
)

const flashSession = "course-flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot status message: written by a POST handler, read
// exactly once by the next rendered page.
type Flash struct {
	Type string
	Text string
}

func init() {
	gob.Register(Flash{})
}

// SetFlash queues a flash message for the client's next page render.
func (m *Manager) SetFlash(w http.ResponseWriter, r *http.Request, typ, text string) {
	s, _ := m.flashes.Get(r, flashSession)
	s.AddFlash(Flash{Type: typ, Text: text})
	if err := s.Save(r, w); err != nil {
		m.log.Errorw("saving flash failed", "err", err)
	}
}

// TakeFlash returns the pending flash message, if any, and clears it.
func (m *Manager) TakeFlash(w http.ResponseWriter, r *http.Request) *Flash {
	s, _ := m.flashes.Get(r, flashSession)
	msgs := s.Flashes()
	if len(msgs) == 0 {
		return nil
	}
	// Flashes() removed the message from the session; persist that.
	if err := s.Save(r, w); err != nil {
		m.log.Errorw("clearing flash failed", "err", err)
	}

	if f, ok := msgs[0].(Flash); ok {
		return &f
	}
	return nil
}
