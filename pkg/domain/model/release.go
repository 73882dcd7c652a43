package model

// Release represents the fields of a GitHub release used for uploading
type Release struct {
	ID        int64  // Release ID
	TagName   string // Tag the release points to
	UploadURL string // Upload endpoint (may be a URI template)
	Body      string // Release notes
}

// Asset represents a file attached to a release
type Asset struct {
	ID                 int64
	Name               string
	BrowserDownloadURL string
	Size               int64
}

// UploadResult is the outcome of an asset upload. DownloadURL is empty
// when the upload was skipped.
type UploadResult struct {
	DownloadURL string
	Replaced    bool // An existing asset was deleted before uploading
	Existing    bool // An existing asset was kept and its URL returned
}

// UploadRequest holds the parameters of a single asset upload
type UploadRequest struct {
	File      string // Local file path
	AssetName string
	Tag       string // Used for diagnostics only
	Overwrite bool
}
