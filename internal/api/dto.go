package api

// LoginRequest is the request body for POST /login.
type LoginRequest struct {
	Passkey string `json:"passkey"`
}

// LoginResponse carries the session token issued on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreatedResponse carries the identifier of a newly created record.
type CreatedResponse struct {
	ID string `json:"id"`
}

// UploadTargetRequest is the request body for POST /uploads.
type UploadTargetRequest struct {
	ContentType string `json:"content_type"`
}

// UploadTargetResponse describes a short-lived, single-use upload target.
type UploadTargetResponse struct {
	Token     string `json:"token"`
	UploadURL string `json:"upload_url"`
}

// UploadResponse carries the storage reference for a completed upload.
type UploadResponse struct {
	StorageID string `json:"storageId"`
}

// VisibilityRequest is the body for the technology visibility toggle.
type VisibilityRequest struct {
	Visible bool `json:"is_visible"`
}

// OrderRequest is the body for the technology reorder operation.
type OrderRequest struct {
	Order int `json:"order"`
}
