package dto

// FeedbackRequest is the POST /feedbacks payload.
type FeedbackRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}
