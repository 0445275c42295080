package chat

// Exchange 会话历史中的一对 用户/助手 消息
// Exchange is one user/assistant pair in the rolling session history.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ToolCall records one dispatched tool invocation within a turn.
type ToolCall struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
	Result string         `json:"result"`
}

// Turn 一次完整的问答回合，写入交互日志后不可变
// Turn is one complete request/reply round trip. Immutable once logged.
type Turn struct {
	TurnID         string     `json:"turn_id"`
	SessionID      string     `json:"session_id"`
	UserMessage    string     `json:"user_message"`
	AssistantReply string     `json:"assistant_reply"`
	Model          string     `json:"model"`
	ToolCalls      []ToolCall `json:"tool_calls,omitempty"`
	CreatedAt      string     `json:"created_at"`
}

// Feedback is a user rating for a turn, recorded independently of the turn
// itself. TurnID is not validated at write time; the export join tolerates
// references to turns that never made it into the interaction log.
type Feedback struct {
	TurnID    string `json:"turn_id"`
	Rating    string `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Session   string `json:"session,omitempty"`
	CreatedAt string `json:"created_at"`
}
