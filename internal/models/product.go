package models

// ProductData is what the extraction provider pulls out of a product page.
// It lives only for the duration of a job run; it is never persisted except
// where it ends up embedded in rendered assets.
type ProductData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Benefits    []string `json:"benefits"`
	Reviews     []Review `json:"reviews"`
	URL         string   `json:"url"`
}

type Review struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// VoiceOption describes one narration voice offered by the active provider.
type VoiceOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Accent string `json:"accent"`
}
