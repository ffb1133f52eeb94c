package download

import "time"

type FileStatus string

const (
	FileStatusSkipped   FileStatus = "skipped"
	FileStatusSucceeded FileStatus = "succeeded"
	FileStatusFailed    FileStatus = "failed"
)

// FileResult is the outcome of one candidate link in the download loop.
type FileResult struct {
	URL      string
	Filename string
	Status   FileStatus
	Size     int64
	Err      error
}

// Report accumulates the outcome of one DownloadFromURL run.
type Report struct {
	SuccessCount    int
	FailedCount     int
	SkippedCount    int
	SuccessfulFiles []string
	FailedFiles     map[string]string
	SkippedFiles    []string
	Results         []FileResult
	TotalSize       int64
	StartTime       time.Time
	EndTime         time.Time
}

func NewReport() *Report {
	return &Report{
		FailedFiles: make(map[string]string),
		StartTime:   time.Now(),
	}
}

func (r *Report) Record(res FileResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case FileStatusSkipped:
		r.SkippedFiles = append(r.SkippedFiles, res.Filename)
		r.SkippedCount++
	case FileStatusSucceeded:
		r.SuccessfulFiles = append(r.SuccessfulFiles, res.Filename)
		r.SuccessCount++
		r.TotalSize += res.Size
	case FileStatusFailed:
		r.FailedFiles[res.URL] = res.Err.Error()
		r.FailedCount++
	}
}

// Duration returns elapsed seconds between start and end, or 0.0 while the
// run is still open.
func (r *Report) Duration() float64 {
	if r.EndTime.IsZero() {
		return 0.0
	}
	return r.EndTime.Sub(r.StartTime).Seconds()
}

func (r *Report) finalize() {
	if r.EndTime.IsZero() {
		r.EndTime = time.Now()
	}
}
