package models

import "time"

// Asset describes a file stored on the remote asset host.
type Asset struct {
	RemoteID     string
	SecureURL    string
	URL          string
	Format       string
	Bytes        int64
	Width        int
	Height       int
	ResourceType string
	CreatedAt    time.Time
}
