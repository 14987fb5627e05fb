package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockChat/internal/catalog"
	"StockChat/internal/customerrors"
	"StockChat/internal/dispatch"
	"StockChat/internal/recorder"

	"github.com/rs/zerolog/log"
)

// GenericErrorReply is shown for every failed turn.
const GenericErrorReply = "Error occurred, please try again."

// Service is the turn boundary between a front-end and the dispatch loop.
type Service struct {
	Loop       *dispatch.Loop
	Sessions   *SessionStore
	Recorder   recorder.Recorder
	startupErr error
}

// NewService creates a Service. A non-nil startupErr puts it in degraded
// mode: every turn answers with that error instead of reaching the oracle.
func NewService(loop *dispatch.Loop, sessions *SessionStore, rec recorder.Recorder, startupErr error) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{Loop: loop, Sessions: sessions, Recorder: rec, startupErr: startupErr}
}

// Handle runs one user turn for sessionID and returns the text to show.
// It never returns an error: failures become GenericErrorReply.
func (s *Service) Handle(ctx context.Context, sessionID, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if s.startupErr != nil {
		return StartupErrorReply(s.startupErr)
	}

	sess := s.Sessions.Get(sessionID)
	start := time.Now()
	res, err := s.turn(ctx, sess, text)

	evt := &recorder.TurnEvent{
		SessionID: sessionID,
		Branch:    string(res.Branch),
		Function:  res.Function,
		Duration:  time.Since(start),
	}
	if err != nil {
		evt.Branch = "error"
		evt.ErrorKind = customerrors.Kind(err)
		log.Error().Err(err).Str("session", sessionID).Str("kind", evt.ErrorKind).Msg("turn failed")
	}
	if rerr := s.Recorder.RecordTurn(evt); rerr != nil {
		log.Warn().Err(rerr).Msg("record turn")
	}

	if err != nil {
		return GenericErrorReply
	}
	return res.Reply
}

// turn shields the front-end from panics raised anywhere inside the loop.
func (s *Service) turn(ctx context.Context, sess *dispatch.Session, text string) (res dispatch.TurnResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in turn: %v", r)
		}
	}()
	return s.Loop.Turn(ctx, sess, text)
}

// StartupErrorReply renders a startup failure for the user.
func StartupErrorReply(err error) string {
	return "The assistant is unavailable: " + err.Error()
}

// Banner lists what the assistant can answer.
func Banner() string {
	var b strings.Builder
	b.WriteString("Stock Analysis Chatbot\n")
	b.WriteString("The Chatbot Can Answer Questions About:\n")
	for _, t := range catalog.Topics {
		b.WriteString("  " + t + "\n")
	}
	b.WriteString("(e.g. What is the stock price of Microsoft?)\n")
	return b.String()
}
