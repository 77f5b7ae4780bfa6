package entity

import "time"

type Playlist struct {
	Id            string          `json:"id"`
	UserId        string          `json:"userId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CoverImageUrl *string         `json:"coverImageUrl"`
	IsPublic      bool            `json:"isPublic"`
	MovieCount    int             `json:"movieCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	User          AuthorSummary   `json:"user"`
	Movies        []PlaylistMovie `json:"movies,omitempty"`
}

type PlaylistMovie struct {
	Id             string    `json:"id"`
	PlaylistId     string    `json:"playlistId"`
	MovieId        string    `json:"movieId"`
	MovieTitle     string    `json:"movieTitle"`
	MoviePosterUrl *string   `json:"moviePosterUrl"`
	MovieYear      *int      `json:"movieYear"`
	Position       int       `json:"position"`
	AddedAt        time.Time `json:"addedAt"`
}

type CreatePlaylistRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CoverImageUrl *string `json:"coverImageUrl"`
	IsPublic      *bool   `json:"isPublic"`
}

type UpdatePlaylistRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	CoverImageUrl *string `json:"coverImageUrl"`
	IsPublic      *bool   `json:"isPublic"`
}

type AddMovieRequest struct {
	MovieId        string  `json:"movieId"`
	MovieTitle     string  `json:"movieTitle"`
	MoviePosterUrl *string `json:"moviePosterUrl"`
	MovieYear      *int    `json:"movieYear"`
}

type ReorderRequest struct {
	MovieIds []string `json:"movieIds"`
}
