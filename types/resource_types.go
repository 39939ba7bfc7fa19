package types

// Field order matters: the first failing field is the one reported back, so
// fields are declared in the order they are checked.
type CreateParentRequest struct {
	Name        string              `json:"name" binding:"required,min=2"`
	UID         string              `json:"uid" binding:"required,min=2"`
	Address     string              `json:"address" binding:"required,min=1"`
	Coordinates string              `json:"coordinates" binding:"required,min=1"`
	Fun         string              `json:"fun" binding:"required,min=1"`
	Password    string              `json:"password" binding:"omitempty,min=6,max=72"`
	DOB         string              `json:"dob" binding:"omitempty,datetime=01-02-2006"`
	Posts       []CreatePostRequest `json:"posts" binding:"omitempty,dive"`
}

// UpdateParentRequest is a partial update; omitted or empty fields keep their value.
type UpdateParentRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2"`
	UID         string `json:"uid" binding:"omitempty,min=2"`
	Address     string `json:"address"`
	Coordinates string `json:"coordinates"`
	Fun         string `json:"fun"`
	Password    string `json:"password" binding:"omitempty,min=6,max=72"`
}

type CreatePostRequest struct {
	Note        string `json:"note"`
	Address     string `json:"address"`
	Coordinates string `json:"coordinates"`
	Fun         string `json:"fun"`
	DOB         string `json:"dob" binding:"omitempty,datetime=01-02-2006"`
}

type AuthenticateRequest struct {
	UID      string `json:"uid" binding:"required"`
	Password string `json:"password" binding:"required"`
}
