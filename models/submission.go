package models

import "strings"

// Submission is the waitlist/feedback form as posted to /api/join.
// Name, Email and Message are the keys of the older request shape and are
// folded into the canonical fields by Normalize.
type Submission struct {
	EmailAddress           string `json:"emailAddress"`
	FeaturesMatterMost     string `json:"featuresMatterMost"`
	CurrentPlacementSystem string `json:"currentPlacementSystem"`
	MainChallenges         string `json:"mainChallenges"`

	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
}

// Normalize trims every field and maps legacy keys onto the canonical ones
// when the canonical value is empty.
func (s *Submission) Normalize() {
	s.EmailAddress = strings.TrimSpace(s.EmailAddress)
	s.FeaturesMatterMost = strings.TrimSpace(s.FeaturesMatterMost)
	s.CurrentPlacementSystem = strings.TrimSpace(s.CurrentPlacementSystem)
	s.MainChallenges = strings.TrimSpace(s.MainChallenges)
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Message = strings.TrimSpace(s.Message)

	if s.EmailAddress == "" {
		s.EmailAddress = s.Email
	}
	if s.MainChallenges == "" {
		s.MainChallenges = s.Message
	}
	s.Email = ""
	s.Message = ""
}

// HasRequired reports whether the submission carries an email address.
func (s Submission) HasRequired() bool {
	return s.EmailAddress != ""
}

// DisplayName is what the notification subject refers to the submitter as.
func (s Submission) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.EmailAddress
}
