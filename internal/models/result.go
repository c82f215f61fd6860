package models

type Notice struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type EvaluateResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Stage        string            `json:"stage"`
	FailedAt     string            `json:"failed_at,omitempty"`
	ErrorKind    string            `json:"error_kind,omitempty"`
	Notices      []Notice          `json:"notices"`
	Result       *EvaluationResult `json:"result,omitempty"`
	SchemaValid  bool              `json:"schema_valid"`
	RawReply     string            `json:"raw_reply,omitempty"`
	CleanedReply string            `json:"cleaned_reply,omitempty"`
}

type ResultResponse struct {
	ID     string            `json:"id"`
	Record *EvaluationRecord `json:"record"`
}

type ResultListResponse struct {
	Records []EvaluationRecord `json:"records"`
}
