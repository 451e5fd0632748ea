package types

// Photo is the compact view of a Flickr photo the web UI works with.
type Photo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Owner  string `json:"owner"`
	Server string `json:"server"`
	Secret string `json:"secret"`
	Media  string `json:"media"` // "photo" or "video"
	URL    string `json:"url"`   // direct static-image URL
}

// PhotoPage is one page of search results with the pagination info needed by the UI.
type PhotoPage struct {
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	PerPage int     `json:"perPage"`
	Total   int     `json:"total"`
	Photos  []Photo `json:"photos"`
}
