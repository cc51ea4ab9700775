package model

// ProgressEvent is a normalized progress notification.
type ProgressEvent struct {
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// ProgressMessage is the line-delimited JSON form of a ProgressEvent.
type ProgressMessage struct {
	Type       string `json:"type"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// NewProgressMessage wraps e for streaming.
func NewProgressMessage(e ProgressEvent) ProgressMessage {
	return ProgressMessage{Type: "progress", Percentage: e.Percentage, Message: e.Message}
}

// OperationResult is the final record of a mutation command.
type OperationResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PackageName string `json:"package_name,omitempty"`
}
