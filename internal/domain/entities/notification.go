package entities

// Notification is a backend-authored message shown in the notification list
type Notification struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
	Status      string `json:"status"`
	CreatedOn   string `json:"created_on"`
}

// Report is an abuse report filed against an ad
type Report struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	AdsID       int64  `json:"ads_id"`
	AdsName     string `json:"ads_name"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
}
