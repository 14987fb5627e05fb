package dispatch

import (
	"context"
	"fmt"

	"StockChat/internal/catalog"
	"StockChat/internal/customerrors"
	"StockChat/internal/model"

	"github.com/rs/zerolog/log"
)

// Completion is one oracle answer: either direct content or a function call.
type Completion struct {
	Content      string
	FunctionCall *model.FunctionCall
}

// Oracle is a function-calling language model. When functions is non-empty
// the oracle decides on its own whether to call one; when it is nil the
// oracle must answer in natural language.
type Oracle interface {
	Complete(ctx context.Context, messages []model.Message, functions []catalog.FunctionSpec) (Completion, error)
}

// Branch says how a turn was answered.
type Branch string

const (
	BranchDirect   Branch = "direct"
	BranchFunction Branch = "function"
)

// TurnResult is the outcome of a turn. When a turn fails after a function was
// dispatched, Branch and Function are still set so the failure can be tied to it.
type TurnResult struct {
	Reply    string
	Branch   Branch
	Function string // catalog function name on BranchFunction
}

// Loop runs single user turns against an oracle and the indicator engine.
type Loop struct {
	Oracle    Oracle
	Engine    catalog.Engine
	Functions []catalog.FunctionSpec
}

// NewLoop creates a Loop exposing the full catalog.
func NewLoop(oracle Oracle, engine catalog.Engine) *Loop {
	return &Loop{Oracle: oracle, Engine: engine, Functions: catalog.Specs()}
}

// Turn appends utterance to the session and produces the assistant's reply.
// On error the session keeps whatever messages were appended before the
// failure. An oracle answer with neither content nor a function call is
// ErrOracleRequestFailed.
func (l *Loop) Turn(ctx context.Context, s *Session, utterance string) (TurnResult, error) {
	s.append(model.Message{Role: model.RoleUser, Content: utterance})

	first, err := l.Oracle.Complete(ctx, s.History(), l.Functions)
	if err != nil {
		return TurnResult{}, err
	}

	if first.FunctionCall == nil {
		if first.Content == "" {
			return TurnResult{}, fmt.Errorf("%w: empty completion", customerrors.ErrOracleRequestFailed)
		}
		s.append(model.Message{Role: model.RoleAssistant, Content: first.Content})
		return TurnResult{Reply: first.Content, Branch: BranchDirect}, nil
	}

	fc := *first.FunctionCall
	call, err := catalog.ParseCall(fc.Name, fc.Arguments)
	if err != nil {
		return TurnResult{}, err
	}
	log.Info().Str("session", s.ID).Str("function", fc.Name).Str("ticker", call.Ticker).
		Int("window", call.Window).Msg("dispatching function call")

	result := catalog.Invoke(ctx, l.Engine, call)

	s.append(model.Message{Role: model.RoleAssistant, Content: first.Content, FunctionCall: &fc})
	s.append(model.Message{Role: model.RoleFunction, Name: fc.Name, Content: result})

	partial := TurnResult{Branch: BranchFunction, Function: fc.Name}
	second, err := l.Oracle.Complete(ctx, s.History(), nil)
	if err != nil {
		return partial, err
	}
	switch {
	case second.FunctionCall != nil:
		return partial, fmt.Errorf("%w: function call %q requested without a catalog",
			customerrors.ErrOracleRequestFailed, second.FunctionCall.Name)
	case second.Content == "":
		return partial, fmt.Errorf("%w: empty completion after %s", customerrors.ErrOracleRequestFailed, fc.Name)
	}

	s.append(model.Message{Role: model.RoleAssistant, Content: second.Content})
	partial.Reply = second.Content
	return partial, nil
}
