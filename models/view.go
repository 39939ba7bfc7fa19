package models

// ParentView is the public JSON shape of a Parent. It has no password field.
type ParentView struct {
	ID          uint        `json:"id"`
	Kind        string      `json:"kind"`
	Name        string      `json:"name"`
	UID         string      `json:"uid"`
	Address     string      `json:"address"`
	Coordinates string      `json:"coordinates"`
	Fun         string      `json:"fun"`
	DOB         string      `json:"dob,omitempty"`
	Age         *int        `json:"age,omitempty"`
	Posts       []ChildView `json:"posts"`
}

type ChildView struct {
	ID          uint   `json:"id"`
	ParentID    uint   `json:"parentID"`
	Note        string `json:"note"`
	Image       string `json:"image"`
	ImageURL    string `json:"imageURL,omitempty"`
	Base64      string `json:"base64,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	Address     string `json:"address"`
	Coordinates string `json:"coordinates"`
	Fun         string `json:"fun"`
	DOB         string `json:"dob,omitempty"`
	Age         *int   `json:"age,omitempty"`
}
