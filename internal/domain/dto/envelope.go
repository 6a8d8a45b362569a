package dto

// Envelope is the wire form of a result envelope.
type Envelope struct {
	State string `json:"state"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type Notice struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type TabState struct {
	Tab string `json:"tab"`
}
