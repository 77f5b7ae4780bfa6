package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"cinelog/internal/entity"
	"cinelog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaylistRepo struct {
	playlists map[string]entity.Playlist
	movies    map[string][]entity.PlaylistMovie
	nextId    int
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[string]entity.Playlist),
		movies:    make(map[string][]entity.PlaylistMovie),
	}
}

func (f *fakePlaylistRepo) Create(_ context.Context, playlist entity.Playlist) (string, error) {
	f.nextId++
	playlist.Id = "pl-" + strconv.Itoa(f.nextId)
	f.playlists[playlist.Id] = playlist
	return playlist.Id, nil
}

func (f *fakePlaylistRepo) Get(_ context.Context, playlistId string) (entity.Playlist, error) {
	playlist, ok := f.playlists[playlistId]
	if !ok {
		return entity.Playlist{}, repository.ErrPlaylistNotFound
	}
	playlist.MovieCount = len(f.movies[playlistId])
	return playlist, nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, playlist entity.Playlist) error {
	if _, ok := f.playlists[playlist.Id]; !ok {
		return repository.ErrPlaylistNotFound
	}
	f.playlists[playlist.Id] = playlist
	return nil
}

func (f *fakePlaylistRepo) Delete(_ context.Context, playlistId string) error {
	delete(f.playlists, playlistId)
	delete(f.movies, playlistId)
	return nil
}

func (f *fakePlaylistRepo) ListPublic(_ context.Context, _, _ int) ([]entity.Playlist, int, error) {
	return nil, 0, nil
}

func (f *fakePlaylistRepo) ListByUser(_ context.Context, _ string, _ bool) ([]entity.Playlist, error) {
	return nil, nil
}

func (f *fakePlaylistRepo) ListMovies(_ context.Context, playlistId string) ([]entity.PlaylistMovie, error) {
	return f.movies[playlistId], nil
}

func (f *fakePlaylistRepo) AddMovie(_ context.Context, playlistId string, movie entity.PlaylistMovie) (entity.PlaylistMovie, error) {
	for _, m := range f.movies[playlistId] {
		if m.MovieId == movie.MovieId {
			return entity.PlaylistMovie{}, repository.ErrMovieAlreadyAdded
		}
	}
	movie.PlaylistId = playlistId
	movie.Position = len(f.movies[playlistId])
	movie.AddedAt = time.Now()
	f.movies[playlistId] = append(f.movies[playlistId], movie)
	return movie, nil
}

func (f *fakePlaylistRepo) RemoveMovie(_ context.Context, playlistId, movieId string) error {
	movies := f.movies[playlistId]
	for i, m := range movies {
		if m.MovieId == movieId {
			f.movies[playlistId] = append(movies[:i], movies[i+1:]...)
			return nil
		}
	}
	return repository.ErrMovieNotInPlaylist
}

func (f *fakePlaylistRepo) Reorder(_ context.Context, playlistId string, movieIds []string) error {
	byId := make(map[string]entity.PlaylistMovie)
	for _, m := range f.movies[playlistId] {
		byId[m.MovieId] = m
	}
	var reordered []entity.PlaylistMovie
	for i, id := range movieIds {
		m, ok := byId[id]
		if !ok {
			continue
		}
		m.Position = i
		reordered = append(reordered, m)
	}
	f.movies[playlistId] = reordered
	return nil
}

func newTestPlaylistUsecase() (PlaylistUsecase, *fakeInteractionRepo) {
	interactions := &fakeInteractionRepo{}
	return NewPlaylistUsecase(newFakePlaylistRepo(), interactions), interactions
}

func createPlaylist(t *testing.T, uc PlaylistUsecase, userId string) entity.Playlist {
	t.Helper()
	playlist, err := uc.Create(context.Background(), userId, entity.CreatePlaylistRequest{
		Name:        "Slow cinema",
		Description: "Long takes only.",
	})
	require.NoError(t, err)
	return playlist
}

func TestPlaylistCreate_DefaultsToPublic(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()

	playlist := createPlaylist(t, uc, "owner")
	assert.True(t, playlist.IsPublic)
	assert.Equal(t, "owner", playlist.UserId)
}

func TestPlaylistCreate_Validation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()

	_, err := uc.Create(context.Background(), "owner", entity.CreatePlaylistRequest{Name: ""})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
}

func TestPlaylistUpdate_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()
	playlist := createPlaylist(t, uc, "owner")

	name := "Hijacked"
	_, err := uc.Update(context.Background(), playlist.Id, "intruder", entity.UpdatePlaylistRequest{Name: &name})
	assert.Equal(t, "FORBIDDEN", appErrCode(t, err))

	err = uc.Delete(context.Background(), playlist.Id, "intruder")
	assert.Equal(t, "FORBIDDEN", appErrCode(t, err))
}

func TestPlaylistAddMovie_PositionsAppend(t *testing.T) {
	t.Parallel()

	uc, interactions := newTestPlaylistUsecase()
	playlist := createPlaylist(t, uc, "owner")

	first, err := uc.AddMovie(context.Background(), playlist.Id, "owner", entity.AddMovieRequest{
		MovieId: "603", MovieTitle: "The Matrix",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := uc.AddMovie(context.Background(), playlist.Id, "owner", entity.AddMovieRequest{
		MovieId: "604", MovieTitle: "The Matrix Reloaded",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	assert.Contains(t, interactions.recorded, entity.InteractionMovieAdd)
}

func TestPlaylistAddMovie_Duplicate(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()
	playlist := createPlaylist(t, uc, "owner")

	_, err := uc.AddMovie(context.Background(), playlist.Id, "owner", entity.AddMovieRequest{
		MovieId: "603", MovieTitle: "The Matrix",
	})
	require.NoError(t, err)

	_, err = uc.AddMovie(context.Background(), playlist.Id, "owner", entity.AddMovieRequest{
		MovieId: "603", MovieTitle: "The Matrix",
	})
	assert.Equal(t, "MOVIE_ALREADY_IN_PLAYLIST", appErrCode(t, err))
}

func TestPlaylistAddMovie_Validation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()
	playlist := createPlaylist(t, uc, "owner")

	_, err := uc.AddMovie(context.Background(), playlist.Id, "owner", entity.AddMovieRequest{})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
}

func TestPlaylistRemoveMovie_NotInPlaylist(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()
	playlist := createPlaylist(t, uc, "owner")

	err := uc.RemoveMovie(context.Background(), playlist.Id, "999", "owner")
	assert.Equal(t, "MOVIE_NOT_IN_PLAYLIST", appErrCode(t, err))
}

func TestPlaylistReorder(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()
	playlist := createPlaylist(t, uc, "owner")

	for _, id := range []string{"1", "2", "3"} {
		_, err := uc.AddMovie(context.Background(), playlist.Id, "owner", entity.AddMovieRequest{
			MovieId: id, MovieTitle: "Movie " + id,
		})
		require.NoError(t, err)
	}

	require.NoError(t, uc.Reorder(context.Background(), playlist.Id, "owner", []string{"3", "1", "2"}))

	got, err := uc.Get(context.Background(), playlist.Id)
	require.NoError(t, err)
	require.Len(t, got.Movies, 3)
	assert.Equal(t, "3", got.Movies[0].MovieId)
	assert.Equal(t, 0, got.Movies[0].Position)
	assert.Equal(t, "1", got.Movies[1].MovieId)
}

func TestPlaylistGet_Missing(t *testing.T) {
	t.Parallel()

	uc, _ := newTestPlaylistUsecase()

	_, err := uc.Get(context.Background(), "ghost")
	assert.Equal(t, "PLAYLIST_NOT_FOUND", appErrCode(t, err))
}
