package models

// These structs define the JSON payloads exchanged with the function
// entry points.

// SyncRequest is the input for a content-sync run. It arrives either as the
// data of the scheduler's Pub/Sub CloudEvent or as an HTTP body.
type SyncRequest struct {
	Trigger     string `json:"trigger"`
	ExecutionID string `json:"executionId"`
}

// SyncResponse summarizes one content-sync run.
type SyncResponse struct {
	Status          string `json:"status"`
	RunID           string `json:"runId"`
	Candidates      int    `json:"candidates"`
	Published       int    `json:"published"`
	Duplicates      int    `json:"duplicates"`
	SkippedEmpty    int    `json:"skippedEmpty"`
	Failed          int    `json:"failed"`
	DeployTriggered bool   `json:"deployTriggered"`
}

// PostsExportRequest is the input for the posts-exporter function.
type PostsExportRequest struct {
	ExecutionID string `json:"executionId"`
}

// PostsExportResponse is the output of the posts-exporter function.
type PostsExportResponse struct {
	Status      string `json:"status"`
	PostCount   int    `json:"postCount"`
	PostsGCSUri string `json:"postsGcsUri"`
	SlugsGCSUri string `json:"slugsGcsUri"`
}

// CachedPost is one entry of the exported posts cache consumed by the
// static site build.
type CachedPost struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Category  string  `json:"category"`
	Excerpt   string  `json:"excerpt"`
	Content   string  `json:"content"`
	Image     string  `json:"image"`
	ReadTime  string  `json:"readTime"`
	Author    string  `json:"author"`
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}
