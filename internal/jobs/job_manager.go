package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled jobs as one unit.
type JobManager struct {
	qrTokenPurgeJob *QrTokenPurgeJob
}

func NewJobManager(qrTokenPurgeJob *QrTokenPurgeJob) *JobManager {
	return &JobManager{qrTokenPurgeJob: qrTokenPurgeJob}
}

// StartAll returns the first start failure.
func (jm *JobManager) StartAll() error {
	if err := jm.qrTokenPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start qr token purge job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.qrTokenPurgeJob.Stop()
}
