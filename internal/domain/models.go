package domain

// UploadedFile is one file accepted from a multipart request and written to storage.
type UploadedFile struct {
	OriginalName string
	MediaType    string
	Size         int64
	StorageName  string
	Path         string
	Category     Category
}

// StoredImage is the public reference returned to the client for a stored file.
type StoredImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}
