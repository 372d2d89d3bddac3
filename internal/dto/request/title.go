package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genres,omitempty" validate:"omitempty,dive,slug"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,slug"`
	Genres      []string `json:"genres,omitempty" validate:"omitempty,dive,slug"`
}

// TitleListFilter is parsed from list query parameters.
type TitleListFilter struct {
	Category string
	Genre    string
	Name     string
	Year     int
}
