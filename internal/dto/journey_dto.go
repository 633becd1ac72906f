package dto

// JourneyProgress is the per-journey state stored on the user record.
// CompletedStepIDs only ever grows; CurrentStepID only advances.
type JourneyProgress struct {
	CompletedStepIDs []int `json:"completed"`
	CurrentStepID    int   `json:"currentStepId"`
}

// ProgressUpdateRequest marks a journey step as completed.
type ProgressUpdateRequest struct {
	JourneyID int `json:"journeyId" validate:"required,min=1"`
	StepID    int    `json:"stepId" validate:"required,min=1"`
}

// ProgressResponse returns the full progress map after an update.
type ProgressResponse struct {
	Journeys map[string]JourneyProgress `json:"journeys"`
}
