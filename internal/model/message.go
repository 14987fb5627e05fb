package model

// Role tags a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// FunctionCall is the oracle's request to invoke a catalog function.
type FunctionCall struct {
	Name      string
	Arguments string // JSON-encoded argument object
}

// Message is one entry of a conversation.
type Message struct {
	Role         Role
	Content      string
	Name         string        // function name, set on RoleFunction messages
	FunctionCall *FunctionCall // set on assistant messages that requested a call
}
