package httptransport

type CheckActionRequest struct {
	Action string `json:"action"`
}

type CheckActionResponse struct {
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

type PageAccessResponse struct {
	Page    string `json:"page"`
	Allowed bool   `json:"allowed"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
