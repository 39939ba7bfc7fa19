package models

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DateLayout is the wire format of every date field (dob).
const DateLayout = "01-02-2006"

// Parent is the owning record of a resource group. Kind tells groups apart
// ("activity", "user", ...) so one table serves every configured resource.
type Parent struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Kind        string     `gorm:"type:varchar(50);not null;index" json:"kind"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	UID         string     `gorm:"column:uid;type:varchar(255);not null;uniqueIndex" json:"uid"`
	Address     string     `gorm:"type:varchar(255);not null" json:"address"`
	Coordinates string     `gorm:"type:varchar(255);not null" json:"coordinates"`
	Fun         string     `gorm:"type:varchar(255)" json:"fun"`
	Password    string     `gorm:"type:varchar(255)" json:"-"` // bcrypt hash, never exposed
	DOB         *time.Time `gorm:"column:dob;type:date" json:"-"`
	Posts       []Child    `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"posts"`
}

func (Parent) TableName() string { return "parents" }

// ParentUpdate carries a partial update. Empty fields are left untouched.
type ParentUpdate struct {
	Name        string
	UID         string
	Address     string
	Coordinates string
	Fun         string
	Password    string
}

func NewParent(kind, name, uid, address, coordinates, fun string) *Parent {
	return &Parent{
		Kind:        kind,
		Name:        name,
		UID:         uid,
		Address:     address,
		Coordinates: coordinates,
		Fun:         fun,
	}
}

// IsUID reports whether uid is this record's external id.
func (p *Parent) IsUID(uid string) bool {
	return p.UID == uid
}

// AppendPost attaches a child so it is persisted together with the parent.
func (p *Parent) AppendPost(c Child) {
	c.ParentID = p.ID
	p.Posts = append(p.Posts, c)
}

func (p *Parent) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hashed)
	return nil
}

// IsPassword checks password against the stored hash. Records without a
// password never match.
func (p *Parent) IsPassword(password string) bool {
	if p.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)) == nil
}

// Age is computed on every call from the stored date of birth.
func (p *Parent) Age(today time.Time) (int, bool) {
	if p.DOB == nil {
		return 0, false
	}
	return AgeOn(*p.DOB, today), true
}

// ApplyUpdate overwrites only the fields that have a value.
func (p *Parent) ApplyUpdate(u ParentUpdate) error {
	if len(u.Name) > 0 {
		p.Name = u.Name
	}
	if len(u.UID) > 0 {
		p.UID = u.UID
	}
	if len(u.Address) > 0 {
		p.Address = u.Address
	}
	if len(u.Coordinates) > 0 {
		p.Coordinates = u.Coordinates
	}
	if len(u.Fun) > 0 {
		p.Fun = u.Fun
	}
	if len(u.Password) > 0 {
		if err := p.SetPassword(u.Password); err != nil {
			return err
		}
	}
	return nil
}

// Read serializes the parent and its posts as of now.
func (p *Parent) Read(ctx context.Context, files AttachmentReader) (ParentView, error) {
	return p.ReadAt(ctx, files, time.Now())
}

// ReadAt serializes the parent using today for derived ages. Post images are
// fetched from files on every call.
func (p *Parent) ReadAt(ctx context.Context, files AttachmentReader, today time.Time) (ParentView, error) {
	view := ParentView{
		ID:          p.ID,
		Kind:        p.Kind,
		Name:        p.Name,
		UID:         p.UID,
		Address:     p.Address,
		Coordinates: p.Coordinates,
		Fun:         p.Fun,
		Posts:       make([]ChildView, 0, len(p.Posts)),
	}
	if p.DOB != nil {
		view.DOB = p.DOB.Format(DateLayout)
		age := AgeOn(*p.DOB, today)
		view.Age = &age
	}

	for i := range p.Posts {
		post, err := p.Posts[i].ReadAt(ctx, files, today)
		if err != nil {
			return ParentView{}, err
		}
		view.Posts = append(view.Posts, post)
	}
	return view, nil
}

// AgeOn returns whole years between dob and today: the year difference, minus
// one when today's month/day comes before the birthday's month/day.
func AgeOn(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// ParseDate parses a dob in DateLayout. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
