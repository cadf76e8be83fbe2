package types

// ReplyOn controls when the calling contract is called back for a sub-message.
type ReplyOn int

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
	ReplyError
	ReplyAlways
)

// OnSuccess reports whether a successful result triggers a reply.
func (r ReplyOn) OnSuccess() bool { return r == ReplySuccess || r == ReplyAlways }

// OnError reports whether a failed result triggers a reply.
func (r ReplyOn) OnError() bool { return r == ReplyError || r == ReplyAlways }

// Attribute is a key/value pair attached to a contract's event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a custom typed event emitted by a contract.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// SubMsg is a message dispatched by a contract, optionally with a reply.
type SubMsg struct {
	ID      uint64    `json:"id"`
	Payload []byte    `json:"payload,omitempty"`
	Msg     CosmosMsg `json:"msg"`
	ReplyOn ReplyOn   `json:"reply_on"`
}

// Response is what a contract entry point hands back to the host.
type Response struct {
	Messages   []SubMsg    `json:"messages"`
	Attributes []Attribute `json:"attributes"`
	Events     []Event     `json:"events"`
	Data       []byte      `json:"data,omitempty"`
}

func NewResponse() *Response {
	return &Response{}
}

// AddMessages appends fire-and-forget messages; a failure aborts the whole call.
func (r *Response) AddMessages(msgs ...CosmosMsg) *Response {
	for _, msg := range msgs {
		r.Messages = append(r.Messages, SubMsg{Msg: msg, ReplyOn: ReplyNever})
	}
	return r
}

func (r *Response) AddSubMessage(sub SubMsg) *Response {
	r.Messages = append(r.Messages, sub)
	return r
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) AddEvent(ev Event) *Response {
	r.Events = append(r.Events, ev)
	return r
}

func (r *Response) SetData(data []byte) *Response {
	r.Data = data
	return r
}

// Attribute returns the value of the first attribute named key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// MsgResponse is the protobuf encoded result of one dispatched message.
type MsgResponse struct {
	TypeURL string `json:"type_url"`
	Value   []byte `json:"value"`
}

type SubMsgResponse struct {
	Events       []Event       `json:"events"`
	Data         []byte        `json:"data,omitempty"`
	MsgResponses []MsgResponse `json:"msg_responses"`
}

// SubMsgResult holds either the successful response or the error string.
type SubMsgResult struct {
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"error,omitempty"`
}

// Reply is delivered to the dispatching contract after a sub-message ran.
type Reply struct {
	ID      uint64       `json:"id"`
	Payload []byte       `json:"payload,omitempty"`
	Result  SubMsgResult `json:"result"`
}

