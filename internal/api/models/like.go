package models

// LikeRequest is the request body for submitting or forwarding a like.
type LikeRequest struct {
	PhotoID      string `json:"photoId"`
	LikerUserID  string `json:"likerUserId"`
	TargetUserID string `json:"targetUserId"`
	// ExplicitToken overrides the registry lookup for the target user.
	ExplicitToken string `json:"explicitToken,omitempty"`
}

// LikeResult summarizes a recorded like and its dispatch attempt.
type LikeResult struct {
	EventID       string `json:"eventId"`
	TokenResolved bool   `json:"tokenResolved"`
	// Dispatch is "sent", "failed" or "skipped". A failed or skipped
	// dispatch still means the like itself was recorded.
	Dispatch string `json:"dispatch"`
}

// ExternalLikeResult summarizes an externally forwarded like.
type ExternalLikeResult struct {
	// Simulated is true when no external credential is configured and
	// the upstream call was emulated locally.
	Simulated bool `json:"simulated"`
	// Recorded is false when the upstream accepted the like but the
	// local event write failed; the forward still succeeded.
	Recorded      bool   `json:"recorded"`
	EventID       string `json:"eventId,omitempty"`
	TokenResolved bool   `json:"tokenResolved"`
	Dispatch      string `json:"dispatch,omitempty"`
}
