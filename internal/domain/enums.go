package domain

// ResultStatus represents the terminal state of one pipeline run.
type ResultStatus string

const (
	ResultStatusRepaired ResultStatus = "repaired"
	ResultStatusDegraded ResultStatus = "degraded"
)

// DeliverableMode selects the shape of the payload the pipeline assembles.
type DeliverableMode string

const (
	// DeliverableReport produces a human-readable report with bounded
	// previews of the original and repaired text.
	DeliverableReport DeliverableMode = "report"
	// DeliverableFullText produces the entire repaired text.
	DeliverableFullText DeliverableMode = "fulltext"
)

// AllowedContentTypes maps detected MIME content types accepted for upload.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
}
