package models

// BridgeRequest is a message sent to the native host. Action doubles as the
// correlation key for the reply; the protocol carries no request id.
type BridgeRequest struct {
	Action  string                 `json:"action"`
	Payload map[string]interface{} `json:"payload"`
}

// BridgeReply is a message delivered by the native host on one of the reply
// channels. Source tags the window-message variant so unrelated messages can
// be discarded before decoding.
type BridgeReply struct {
	Source string                 `json:"source,omitempty"`
	Action string                 `json:"action"`
	OK     bool                   `json:"ok"`
	Data   map[string]interface{} `json:"data,omitempty"`
	Error  string                 `json:"error,omitempty"`
}
