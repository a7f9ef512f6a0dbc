package history

import (
	"time"

	"saenggibu-backend/internal/analyses"
)

// SharedRecord is one analysis result published to the history feed.
type SharedRecord struct {
	ID              string                  `json:"id"`
	OwnerID         string                  `json:"ownerId"`
	StudentProfile  string                  `json:"studentProfile"`
	CareerDirection string                  `json:"careerDirection"`
	OverallScore    int                     `json:"overallScore"`
	Strengths       []string                `json:"strengths"`
	Improvements    []string                `json:"improvements"`
	Result          *analyses.AnalysisResult `json:"result,omitempty"`
	IsPrivate       bool                    `json:"isPrivate"`
	Likes           int                     `json:"likes"`
	Saves           int                     `json:"saves"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// ViewableBy reports whether the viewer may see the record.
func (r SharedRecord) ViewableBy(viewerID string) bool {
	if !r.IsPrivate {
		return true
	}
	return viewerID != "" && r.OwnerID == viewerID
}
