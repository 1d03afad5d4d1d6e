package api

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// CreatedResponse carries the id assigned to a new record.
type CreatedResponse struct {
	ID string `json:"id"`
}

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	FilePath string `json:"file_path"`
}
