package moviedb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinelog/internal/entity"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrUnauthorized  = errors.New("movie api key rejected")
)

// Client is a thin TMDB REST client. All calls are simple GETs with the API
// key in the query string; responses are reshaped into entity types.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type tmdbMovie struct {
	Id           int            `json:"id"`
	Title        string         `json:"title"`
	Overview     string         `json:"overview"`
	PosterPath   *string        `json:"poster_path"`
	BackdropPath *string        `json:"backdrop_path"`
	ReleaseDate  string         `json:"release_date"`
	VoteAverage  float64        `json:"vote_average"`
	VoteCount    int            `json:"vote_count"`
	Popularity   float64        `json:"popularity"`
	GenreIds     []int          `json:"genre_ids"`
	Genres       []entity.Genre `json:"genres"`
	Runtime      *int           `json:"runtime"`
	Tagline      string         `json:"tagline"`
}

type tmdbPage struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbPerson struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Job         string  `json:"job"`
	ProfilePath *string `json:"profile_path"`
}

type tmdbVideo struct {
	Id   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type tmdbDetails struct {
	tmdbMovie
	Credits struct {
		Cast []tmdbPerson `json:"cast"`
		Crew []tmdbPerson `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	Similar struct {
		Results []tmdbMovie `json:"results"`
	} `json:"similar"`
}

func (c *Client) imageURL(size string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := c.imageBaseURL + "/" + size + *path
	return &u
}

func (c *Client) formatMovie(m tmdbMovie) entity.Movie {
	movie := entity.Movie{
		Id:          strconv.Itoa(m.Id),
		Title:       m.Title,
		Overview:    m.Overview,
		PosterUrl:   c.imageURL("w500", m.PosterPath),
		BackdropUrl: c.imageURL("original", m.BackdropPath),
		ReleaseDate: m.ReleaseDate,
		Rating:      m.VoteAverage,
		VoteCount:   m.VoteCount,
		Popularity:  m.Popularity,
		GenreIds:    m.GenreIds,
		Genres:      m.Genres,
		Runtime:     m.Runtime,
		Tagline:     m.Tagline,
	}
	if m.ReleaseDate != "" {
		if year, err := strconv.Atoi(strings.SplitN(m.ReleaseDate, "-", 2)[0]); err == nil {
			movie.Year = &year
		}
	}
	return movie
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrMovieNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("tmdb: unexpected status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) page(ctx context.Context, path string, params url.Values) ([]entity.Movie, entity.MoviePage, error) {
	var page tmdbPage
	if err := c.get(ctx, path, params, &page); err != nil {
		return nil, entity.MoviePage{}, err
	}

	movies := make([]entity.Movie, 0, len(page.Results))
	for _, m := range page.Results {
		movies = append(movies, c.formatMovie(m))
	}
	return movies, entity.MoviePage{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
	}, nil
}

func (c *Client) Search(ctx context.Context, query string, page int) ([]entity.Movie, entity.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	return c.page(ctx, "/search/movie", params)
}

func (c *Client) Popular(ctx context.Context, page int) ([]entity.Movie, entity.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.page(ctx, "/movie/popular", params)
}

func (c *Client) Trending(ctx context.Context, timeWindow string, page int) ([]entity.Movie, entity.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.page(ctx, "/trending/movie/"+timeWindow, params)
}

func (c *Client) Genres(ctx context.Context) ([]entity.Genre, error) {
	var out struct {
		Genres []entity.Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// Details fetches a movie with credits, videos and similar titles in one
// call and trims them the way the product surfaces them: top 10 cast,
// directing/writing/producing crew, top 5 YouTube videos, 12 similar movies.
func (c *Client) Details(ctx context.Context, movieId string) (entity.MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar")

	var raw tmdbDetails
	if err := c.get(ctx, "/movie/"+movieId, params, &raw); err != nil {
		return entity.MovieDetails{}, err
	}

	details := entity.MovieDetails{Movie: c.formatMovie(raw.tmdbMovie)}

	for _, p := range raw.Credits.Cast {
		if len(details.Credits.Cast) == 10 {
			break
		}
		details.Credits.Cast = append(details.Credits.Cast, entity.CastMember{
			Id:          p.Id,
			Name:        p.Name,
			Character:   p.Character,
			ProfilePath: c.imageURL("w185", p.ProfilePath),
		})
	}

	for _, p := range raw.Credits.Crew {
		if len(details.Credits.Crew) == 10 {
			break
		}
		switch p.Job {
		case "Director", "Writer", "Producer":
			details.Credits.Crew = append(details.Credits.Crew, entity.CrewMember{
				Id:          p.Id,
				Name:        p.Name,
				Job:         p.Job,
				ProfilePath: c.imageURL("w185", p.ProfilePath),
			})
		}
	}

	for _, v := range raw.Videos.Results {
		if len(details.Videos) == 5 {
			break
		}
		if v.Site != "YouTube" {
			continue
		}
		details.Videos = append(details.Videos, entity.MovieVideo{
			Id: v.Id, Key: v.Key, Name: v.Name, Type: v.Type,
		})
	}

	for i, m := range raw.Similar.Results {
		if i == 12 {
			break
		}
		details.Similar = append(details.Similar, c.formatMovie(m))
	}

	return details, nil
}
