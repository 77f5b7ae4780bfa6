package entity

type Movie struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterUrl   *string `json:"posterUrl"`
	BackdropUrl *string `json:"backdropUrl"`
	ReleaseDate string  `json:"releaseDate"`
	Year        *int    `json:"year"`
	Rating      float64 `json:"rating"`
	VoteCount   int     `json:"voteCount"`
	Popularity  float64 `json:"popularity"`
	GenreIds    []int   `json:"genreIds,omitempty"`
	Genres      []Genre `json:"genres,omitempty"`
	Runtime     *int    `json:"runtime,omitempty"`
	Tagline     string  `json:"tagline,omitempty"`
}

type Genre struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profilePath"`
}

type CrewMember struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	ProfilePath *string `json:"profilePath"`
}

type MovieVideo struct {
	Id   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type MovieCredits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type MovieDetails struct {
	Movie
	Credits MovieCredits `json:"credits"`
	Videos  []MovieVideo `json:"videos"`
	Similar []Movie      `json:"similar"`
}

// MoviePage is the provider-side pagination shape, distinct from the
// database Pagination envelope.
type MoviePage struct {
	Page         int `json:"page"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}
