package annotator

import "github.com/healdata/dd-annotator/internal/domain"

// SummaryFile is the name of the run summary written next to the artifacts.
const SummaryFile = "_summary.json"

// Summary holds the counters of one annotation run.
type Summary struct {
	RunID               string   `json:"run_id"`
	FilesProcessed      int      `json:"files_processed"`
	FilesFailed         int      `json:"files_failed"`
	FieldsProcessed     int      `json:"fields_processed"`
	FieldsFailed        int      `json:"fields_failed"`
	AnnotationsProduced int      `json:"annotations_produced"`
	UnannotatedFields   []string `json:"unannotated_fields"`
}

// Dictionary is the annotation artifact written for one input document.
type Dictionary struct {
	Source string  `json:"source"`
	Fields []Field `json:"fields"`
}

// Field is one annotated field. Error is set when annotation failed; the
// field then carries no denotations.
type Field struct {
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Text        string              `json:"text"`
	Denotations []domain.Denotation `json:"denotations"`
	Error       string              `json:"error,omitempty"`
}
