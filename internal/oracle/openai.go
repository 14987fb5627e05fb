package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"StockChat/internal/catalog"
	"StockChat/internal/customerrors"
	"StockChat/internal/dispatch"
	"StockChat/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAI implements dispatch.Oracle on the chat completions API with
// function calling.
type OpenAI struct {
	Client *openai.Client
	Model  string
}

// NewOpenAI creates an oracle. Each request is a single attempt bounded by timeout.
func NewOpenAI(apiKey, baseURL, modelName, proxyURL string, timeout time.Duration) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout, Transport: transport}
	return &OpenAI{Client: openai.NewClientWithConfig(cfg), Model: modelName}
}

func (o *OpenAI) Complete(ctx context.Context, messages []model.Message, functions []catalog.FunctionSpec) (dispatch.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    o.Model,
		Messages: toChatMessages(messages),
	}
	if len(functions) > 0 {
		req.Functions = toFunctionDefinitions(functions)
		req.FunctionCall = "auto"
	}

	start := time.Now()
	resp, err := o.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return dispatch.Completion{}, fmt.Errorf("%w: %v", customerrors.ErrOracleRequestFailed, err)
	}
	log.Debug().Str("model", o.Model).Int("messages", len(messages)).Bool("functions", len(functions) > 0).
		Dur("took", time.Since(start)).Int("tokens", resp.Usage.TotalTokens).Msg("oracle completion")

	if len(resp.Choices) == 0 {
		return dispatch.Completion{}, fmt.Errorf("%w: empty choices", customerrors.ErrOracleRequestFailed)
	}
	msg := resp.Choices[0].Message

	c := dispatch.Completion{Content: msg.Content}
	switch {
	case msg.FunctionCall != nil:
		c.FunctionCall = &model.FunctionCall{Name: msg.FunctionCall.Name, Arguments: msg.FunctionCall.Arguments}
	case len(msg.ToolCalls) > 0 && msg.ToolCalls[0].Type == openai.ToolTypeFunction:
		// some compatible servers answer legacy function requests with tool calls
		fn := msg.ToolCalls[0].Function
		c.FunctionCall = &model.FunctionCall{Name: fn.Name, Arguments: fn.Arguments}
	}
	return c, nil
}

func toChatMessages(messages []model.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		cm := openai.ChatCompletionMessage{Content: m.Content, Name: m.Name}
		switch m.Role {
		case model.RoleUser:
			cm.Role = openai.ChatMessageRoleUser
		case model.RoleAssistant:
			cm.Role = openai.ChatMessageRoleAssistant
		case model.RoleFunction:
			cm.Role = openai.ChatMessageRoleFunction
		}
		if m.FunctionCall != nil {
			cm.FunctionCall = &openai.FunctionCall{Name: m.FunctionCall.Name, Arguments: m.FunctionCall.Arguments}
		}
		out[i] = cm
	}
	return out
}

func toFunctionDefinitions(specs []catalog.FunctionSpec) []openai.FunctionDefinition {
	defs := make([]openai.FunctionDefinition, len(specs))
	for i, s := range specs {
		props := make(map[string]jsonschema.Definition, len(s.Parameters))
		for _, p := range s.Parameters {
			props[p.Name] = jsonschema.Definition{
				Type:        jsonschema.DataType(p.Type),
				Description: p.Description,
			}
		}
		defs[i] = openai.FunctionDefinition{
			Name:        s.Name,
			Description: s.Description,
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: props,
				Required:   s.RequiredNames(),
			},
		}
	}
	return defs
}
