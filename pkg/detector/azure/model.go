package azure

type OperationStatus string

const (
	OperationStatusNotStarted OperationStatus = "notStarted"
	OperationStatusRunning    OperationStatus = "running"
	OperationStatusSucceeded  OperationStatus = "succeeded"
	OperationStatusFailed     OperationStatus = "failed"
)

type AnalyzeOperation struct {
	Status OperationStatus `json:"status"`

	Error  *OperationError `json:"error,omitempty"`
	Result *AnalyzeResult  `json:"analyzeResult,omitempty"`
}

type OperationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AnalyzeResult struct {
	ModelID string `json:"modelId"`

	Content string `json:"content"`
	Pages   []Page `json:"pages"`
}

type Page struct {
	PageNumber int `json:"pageNumber"`

	Lines []Line `json:"lines"`
	Words []Word `json:"words"`
}

type Line struct {
	Content string    `json:"content"`
	Polygon []float64 `json:"polygon"`
}

type Word struct {
	Content string    `json:"content"`
	Polygon []float64 `json:"polygon"`

	Confidence float64 `json:"confidence"`
}
