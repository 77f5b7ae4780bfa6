package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/internal/repository"
)

type PlaylistUsecase interface {
	Create(ctx context.Context, userId string, req entity.CreatePlaylistRequest) (entity.Playlist, error)
	List(ctx context.Context, page, limit int) ([]entity.Playlist, entity.Pagination, error)
	Get(ctx context.Context, playlistId string) (entity.Playlist, error)
	Update(ctx context.Context, playlistId, callerId string, req entity.UpdatePlaylistRequest) (entity.Playlist, error)
	Delete(ctx context.Context, playlistId, callerId string) error
	AddMovie(ctx context.Context, playlistId, callerId string, req entity.AddMovieRequest) (entity.PlaylistMovie, error)
	RemoveMovie(ctx context.Context, playlistId, movieId, callerId string) error
	Reorder(ctx context.Context, playlistId, callerId string, movieIds []string) error
}

type playlistUsecase struct {
	playlistRepo    repository.PlaylistRepository
	interactionRepo repository.InteractionRepository
}

func NewPlaylistUsecase(playlistRepo repository.PlaylistRepository, interactionRepo repository.InteractionRepository) PlaylistUsecase {
	return &playlistUsecase{
		playlistRepo:    playlistRepo,
		interactionRepo: interactionRepo,
	}
}

func validatePlaylistFields(name, description string) []apperror.Violation {
	var violations []apperror.Violation
	if name == "" || len(name) > 100 {
		violations = append(violations, apperror.Violation{Field: "name", Message: "Name must be 1-100 characters"})
	}
	if len(description) > 500 {
		violations = append(violations, apperror.Violation{Field: "description", Message: "Description must be at most 500 characters"})
	}
	return violations
}

// ownedPlaylist loads the playlist and enforces ownership in one step.
func (u *playlistUsecase) ownedPlaylist(ctx context.Context, playlistId, callerId, action string) (entity.Playlist, error) {
	playlist, err := u.playlistRepo.Get(ctx, playlistId)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return entity.Playlist{}, apperror.NotFound("PLAYLIST_NOT_FOUND", "Playlist not found")
		}
		return entity.Playlist{}, fmt.Errorf("loading playlist: %w", err)
	}
	if playlist.UserId != callerId {
		return entity.Playlist{}, apperror.Forbidden("You can only " + action + " your own playlists")
	}
	return playlist, nil
}

func (u *playlistUsecase) Create(ctx context.Context, userId string, req entity.CreatePlaylistRequest) (entity.Playlist, error) {
	if violations := validatePlaylistFields(req.Name, req.Description); len(violations) > 0 {
		return entity.Playlist{}, apperror.Validation(violations)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	playlist := entity.Playlist{
		UserId:        userId,
		Name:          req.Name,
		Description:   req.Description,
		CoverImageUrl: req.CoverImageUrl,
		IsPublic:      isPublic,
	}

	playlistId, err := u.playlistRepo.Create(ctx, playlist)
	if err != nil {
		return entity.Playlist{}, fmt.Errorf("creating playlist: %w", err)
	}

	log.Printf("playlist created: %s by %s", playlistId, userId)
	return u.playlistRepo.Get(ctx, playlistId)
}

func (u *playlistUsecase) List(ctx context.Context, page, limit int) ([]entity.Playlist, entity.Pagination, error) {
	playlists, total, err := u.playlistRepo.ListPublic(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("listing playlists: %w", err)
	}
	return playlists, entity.NewPagination(page, limit, total), nil
}

func (u *playlistUsecase) Get(ctx context.Context, playlistId string) (entity.Playlist, error) {
	playlist, err := u.playlistRepo.Get(ctx, playlistId)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return entity.Playlist{}, apperror.NotFound("PLAYLIST_NOT_FOUND", "Playlist not found")
		}
		return entity.Playlist{}, fmt.Errorf("loading playlist: %w", err)
	}

	movies, err := u.playlistRepo.ListMovies(ctx, playlistId)
	if err != nil {
		return entity.Playlist{}, fmt.Errorf("loading playlist movies: %w", err)
	}
	playlist.Movies = movies

	return playlist, nil
}

func (u *playlistUsecase) Update(ctx context.Context, playlistId, callerId string, req entity.UpdatePlaylistRequest) (entity.Playlist, error) {
	playlist, err := u.ownedPlaylist(ctx, playlistId, callerId, "update")
	if err != nil {
		return entity.Playlist{}, err
	}

	if req.Name != nil {
		playlist.Name = *req.Name
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.CoverImageUrl != nil {
		playlist.CoverImageUrl = req.CoverImageUrl
	}
	if req.IsPublic != nil {
		playlist.IsPublic = *req.IsPublic
	}

	if violations := validatePlaylistFields(playlist.Name, playlist.Description); len(violations) > 0 {
		return entity.Playlist{}, apperror.Validation(violations)
	}

	if err := u.playlistRepo.Update(ctx, playlist); err != nil {
		return entity.Playlist{}, fmt.Errorf("updating playlist: %w", err)
	}

	log.Printf("playlist updated: %s", playlistId)
	return u.playlistRepo.Get(ctx, playlistId)
}

func (u *playlistUsecase) Delete(ctx context.Context, playlistId, callerId string) error {
	if _, err := u.ownedPlaylist(ctx, playlistId, callerId, "delete"); err != nil {
		return err
	}

	if err := u.playlistRepo.Delete(ctx, playlistId); err != nil {
		return fmt.Errorf("deleting playlist: %w", err)
	}

	log.Printf("playlist deleted: %s", playlistId)
	return nil
}

func (u *playlistUsecase) AddMovie(ctx context.Context, playlistId, callerId string, req entity.AddMovieRequest) (entity.PlaylistMovie, error) {
	if _, err := u.ownedPlaylist(ctx, playlistId, callerId, "modify"); err != nil {
		return entity.PlaylistMovie{}, err
	}

	var violations []apperror.Violation
	if req.MovieId == "" {
		violations = append(violations, apperror.Violation{Field: "movieId", Message: "Movie id is required"})
	}
	if req.MovieTitle == "" {
		violations = append(violations, apperror.Violation{Field: "movieTitle", Message: "Movie title is required"})
	}
	if len(violations) > 0 {
		return entity.PlaylistMovie{}, apperror.Validation(violations)
	}

	movie, err := u.playlistRepo.AddMovie(ctx, playlistId, entity.PlaylistMovie{
		MovieId:        req.MovieId,
		MovieTitle:     req.MovieTitle,
		MoviePosterUrl: req.MoviePosterUrl,
		MovieYear:      req.MovieYear,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMovieAlreadyAdded) {
			return entity.PlaylistMovie{}, apperror.Conflict("MOVIE_ALREADY_IN_PLAYLIST", "Movie already in playlist")
		}
		return entity.PlaylistMovie{}, fmt.Errorf("adding movie: %w", err)
	}

	if err := u.interactionRepo.Record(ctx, callerId, entity.InteractionMovieAdd, req.MovieId, "movie"); err != nil {
		log.Printf("recording movie add interaction: %v", err)
	}

	log.Printf("movie added to playlist: %s -> %s", req.MovieId, playlistId)
	return movie, nil
}

func (u *playlistUsecase) RemoveMovie(ctx context.Context, playlistId, movieId, callerId string) error {
	if _, err := u.ownedPlaylist(ctx, playlistId, callerId, "modify"); err != nil {
		return err
	}

	if err := u.playlistRepo.RemoveMovie(ctx, playlistId, movieId); err != nil {
		if errors.Is(err, repository.ErrMovieNotInPlaylist) {
			return apperror.NotFound("MOVIE_NOT_IN_PLAYLIST", "Movie not in playlist")
		}
		return fmt.Errorf("removing movie: %w", err)
	}
	return nil
}

func (u *playlistUsecase) Reorder(ctx context.Context, playlistId, callerId string, movieIds []string) error {
	if _, err := u.ownedPlaylist(ctx, playlistId, callerId, "modify"); err != nil {
		return err
	}

	if err := u.playlistRepo.Reorder(ctx, playlistId, movieIds); err != nil {
		return fmt.Errorf("reordering movies: %w", err)
	}

	log.Printf("playlist movies reordered: %s", playlistId)
	return nil
}
