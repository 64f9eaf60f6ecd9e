package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// ActionResult is the shape every route/gym mutation action returns.
// New is only present on add actions and distinguishes a fresh record
// from an already-existing one.
type ActionResult struct {
	Success bool  `json:"success"`
	New     *bool `json:"new,omitempty"`
}

func ActionOK() ActionResult {
	return ActionResult{Success: true}
}

func ActionAdded(isNew bool) ActionResult {
	return ActionResult{Success: true, New: &isNew}
}

func ActionFailed() ActionResult {
	return ActionResult{Success: false}
}
