package storage

import "time"

// NewS3WithClient exposes the client seam to tests.
func NewS3WithClient(client putObjectAPI, cfg S3Config, now func() time.Time) *S3 {
	s := newS3(client, cfg)
	s.now = now
	return s
}
