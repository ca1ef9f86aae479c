package models

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrEmptyID          = errors.New("record id is empty")
	ErrEmptyName        = errors.New("record name is empty")
	ErrAssetWithoutID   = errors.New("asset reference without remote id")
	ErrDuplicateID      = errors.New("duplicate record id")
	ErrNegativeFileSize = errors.New("negative file size")
)

// AssetRef points at an uploaded asset on the remote host.
type AssetRef struct {
	RemoteID  string
	SecureURL string
}

// Record is one catalog entry. Records without an Asset are demo data.
type Record struct {
	ID        string
	Name      string
	Category  Category
	Asset     *AssetRef
	SizeBytes *int64
	Format    string
	CreatedAt time.Time
	// Added is a free-form age label carried by legacy demo entries that
	// have no CreatedAt.
	Added string
}

// Validate checks the per-record invariants.
func (r Record) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.Asset != nil && r.Asset.RemoteID == "" {
		return ErrAssetWithoutID
	}
	if r.SizeBytes != nil && *r.SizeBytes < 0 {
		return ErrNegativeFileSize
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	if r.Asset != nil {
		a := *r.Asset
		c.Asset = &a
	}
	if r.SizeBytes != nil {
		n := *r.SizeBytes
		c.SizeBytes = &n
	}
	return c
}

// wireRecord is the persisted JSON layout, shared with the browser client.
type wireRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	SecureURL *string `json:"secureUrl,omitempty"`
	PublicID  *string `json:"publicId,omitempty"`
	Format    string  `json:"format,omitempty"`
	Bytes     *int64  `json:"bytes,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	Added     string  `json:"added,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		ID:     r.ID,
		Name:   r.Name,
		Type:   string(r.Category),
		Format: r.Format,
		Bytes:  r.SizeBytes,
		Added:  r.Added,
	}
	if r.Asset != nil {
		id, url := r.Asset.RemoteID, r.Asset.SecureURL
		w.PublicID = &id
		if url != "" {
			w.SecureURL = &url
		}
	}
	if !r.CreatedAt.IsZero() {
		w.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(w)
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*r = Record{
		ID:        w.ID,
		Name:      w.Name,
		Category:  Category(w.Type),
		SizeBytes: w.Bytes,
		Format:    w.Format,
		Added:     w.Added,
	}

	var publicID, secureURL string
	if w.PublicID != nil {
		publicID = *w.PublicID
	}
	if w.SecureURL != nil {
		secureURL = *w.SecureURL
	}
	if publicID != "" || secureURL != "" {
		r.Asset = &AssetRef{RemoteID: publicID, SecureURL: secureURL}
	}

	if w.CreatedAt != "" {
		// unparseable timestamps degrade to "unknown"
		if t, err := time.Parse(time.RFC3339Nano, w.CreatedAt); err == nil {
			r.CreatedAt = t
		}
	}
	return nil
}
