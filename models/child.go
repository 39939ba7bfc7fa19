package models

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Child is a post owned by exactly one Parent. It is removed with its parent.
type Child struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ParentID    uint       `gorm:"not null;index" json:"parentID"`
	Note        string     `gorm:"type:text" json:"note"`
	Image       string     `gorm:"type:varchar(255)" json:"image"` // file name in attachment storage
	Address     string     `gorm:"type:varchar(255)" json:"address"`
	Coordinates string     `gorm:"type:varchar(255)" json:"coordinates"`
	Fun         string     `gorm:"type:varchar(255)" json:"fun"`
	DOB         *time.Time `gorm:"column:dob;type:date" json:"-"`
}

func (Child) TableName() string { return "children" }

// AttachmentReader fetches stored attachment bytes by file name.
type AttachmentReader interface {
	ReadAttachment(ctx context.Context, name string) ([]byte, error)
}

// AttachmentLinker is implemented by storages that can serve files publicly.
type AttachmentLinker interface {
	AttachmentURL(name string) string
}

func (c *Child) Read(ctx context.Context, files AttachmentReader) (ChildView, error) {
	return c.ReadAt(ctx, files, time.Now())
}

// ReadAt serializes the post. When it has an image the file is read and
// base64 encoded; a missing file is returned as an error.
func (c *Child) ReadAt(ctx context.Context, files AttachmentReader, today time.Time) (ChildView, error) {
	view := ChildView{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Note:        c.Note,
		Image:       c.Image,
		Address:     c.Address,
		Coordinates: c.Coordinates,
		Fun:         c.Fun,
	}
	if c.DOB != nil {
		view.DOB = c.DOB.Format(DateLayout)
		age := AgeOn(*c.DOB, today)
		view.Age = &age
	}

	if c.Image != "" {
		data, err := files.ReadAttachment(ctx, c.Image)
		if err != nil {
			return ChildView{}, fmt.Errorf("read image of post %d: %w", c.ID, err)
		}
		view.Base64 = base64.StdEncoding.EncodeToString(data)
		view.MimeType = mimetype.Detect(data).String()
		if linker, ok := files.(AttachmentLinker); ok {
			view.ImageURL = linker.AttachmentURL(c.Image)
		}
	}
	return view, nil
}
