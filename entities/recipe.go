package entities

// Recipe is a derived suggestion, regenerated wholesale on each request and
// never persisted.
type Recipe struct {
	Title         string   `json:"title"`
	Ingredients   []string `json:"ingredients"`
	Instructions  []string `json:"instructions"`
	EstimatedTime string   `json:"estimated_time"`
	Difficulty    string   `json:"difficulty"` // "Easy", "Medium", "Hard"
	YoutubeURL    string   `json:"youtube_url,omitempty"`
}
