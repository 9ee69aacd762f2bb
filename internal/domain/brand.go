package domain

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CarFeature struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
}
