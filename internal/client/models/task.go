package models

// TaskStatus is the lifecycle state of an UploadTask.
type TaskStatus string

const (
	TaskQueued    TaskStatus = "queued"
	TaskUploading TaskStatus = "uploading"
	TaskSuccess   TaskStatus = "success"
	TaskError     TaskStatus = "error"
)

// Terminal reports whether no further transitions happen from s.
func (s TaskStatus) Terminal() bool {
	return s == TaskSuccess || s == TaskError
}

// UploadTask is the transient progress of one file in an upload batch.
type UploadTask struct {
	FileName string
	Status   TaskStatus
	// Progress is 0..100.
	Progress int
	Error    string
	// RecordID is set once the uploaded file has been added to the catalog.
	RecordID string
}
