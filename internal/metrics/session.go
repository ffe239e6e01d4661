package metrics

import (
	"io"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

type State int

const (
	AwaitingInput State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "awaiting-input"
}

// Session is the two-state view the dashboard renders from. It is not safe
// for concurrent use; handlers create one per request.
type Session struct {
	svc    *Service
	state  State
	result *models.Result
	err    error
}

func NewSession(svc *Service) *Session {
	return &Session{svc: svc}
}

// Load replaces any previous result. On failure the session goes back to
// AwaitingInput and keeps the error for display.
func (s *Session) Load(r io.Reader) error {
	res, err := s.svc.Analyze(r)
	if err != nil {
		s.state, s.result, s.err = AwaitingInput, nil, err
		return err
	}
	s.state, s.result, s.err = Ready, res, nil
	return nil
}

func (s *Session) State() State           { return s.state }
func (s *Session) Result() *models.Result { return s.result }
func (s *Session) Err() error             { return s.err }
