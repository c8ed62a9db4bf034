package worker

// Log messages and fields
const (
	LogMsgJobFailed = "Background job failed"
	LogMsgJobPanic  = "Background job panicked"

	LogFieldWorker = "worker"
	LogFieldError  = "error"
)
