package models

// PresignRequest asks for a direct-to-bucket upload URL.
type PresignRequest struct {
	FileName string `binding:"required" json:"fileName"`
	FileType string `binding:"required" json:"fileType"`
}

// PresignResponse carries the signed PUT URL and where the object will live.
type PresignResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// ScrapeRequest is the body of POST /contents/scrape.
type ScrapeRequest struct {
	ToolURL string `binding:"required,url" json:"toolUrl"`
}

// ScrapeResponse holds scraped values with images already re-hosted.
type ScrapeResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Screenshot  string `json:"screenshot"`
	Logo        string `json:"logo"`
}
