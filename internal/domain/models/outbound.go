package models

// OutboundMessageRequest is a text message pushed to a WhatsApp recipient, either by an
// operator over HTTP or by the scheduled leaderboard report.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// ShareRequest asks for the answer to a query command to be pushed to a WhatsApp
// recipient. An empty Command shares the farm status.
type ShareRequest struct {
	To      string `json:"to" binding:"required"`
	Command string `json:"command"`
}
