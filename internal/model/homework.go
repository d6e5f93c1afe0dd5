package model

// HomeworkItem is created out-of-band. Status keeps the stored text
// ("TRUE"/"FALSE") as-is; interpretation lives in the report package.
type HomeworkItem struct {
	ID      string `json:"id,omitempty"`
	Date    string `json:"date"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Status  string `json:"status"`
}
