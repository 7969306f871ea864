package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the request was accepted but nothing was fetched yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusFetching means metadata is being retrieved
	TaskStatusFetching TaskStatus = "Fetching"

	// TaskStatusDownloading means the download is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusConverting means yt-dlp is post-processing the file
	TaskStatusConverting TaskStatus = "Converting"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsFinished returns true if the task is in a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
