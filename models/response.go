package models

// JoinResponse is the envelope returned by POST /api/join.
type JoinResponse struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}
