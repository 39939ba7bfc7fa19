package controllers

// StatusRejected answers a request whose payload failed validation or whose
// record collides with an existing one. Clients depend on this exact code.
const StatusRejected = 210

type MessageResponse struct {
	Message string `json:"message"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

const (
	msgInvalidBody       = "Invalid request body"
	msgNotFound          = "Record not found"
	msgAttachmentFailure = "failed to read attachment"
	msgStoreFailure      = "failed to access records"
)
