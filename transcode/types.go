package transcode

// Job status values reported by the video service.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// UploadResponse is returned when the service accepts a video upload.
type UploadResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// JobStatus describes the progress of a transcoding job.
type JobStatus struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Status   string   `json:"status"`
	Progress float64  `json:"progress"`
	Formats  []string `json:"formats"`
}

// IsDone reports whether the job has finished transcoding.
func (s *JobStatus) IsDone() bool {
	return s.Status == StatusCompleted
}
