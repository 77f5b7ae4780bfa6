package entity

import "time"

type User struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"` // never serialized
	Bio          string    `json:"bio"`
	AvatarUrl    *string   `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthorSummary is the compact author shape embedded in blog and playlist
// responses.
type AuthorSummary struct {
	Id          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	AvatarUrl   *string `json:"avatarUrl"`
}

// Profile is a full public profile with relationship counts and the
// viewer-dependent isFollowing flag.
type Profile struct {
	User
	BlogCount      int  `json:"blogCount"`
	PlaylistCount  int  `json:"playlistCount"`
	FollowerCount  int  `json:"followerCount"`
	FollowingCount int  `json:"followingCount"`
	IsFollowing    bool `json:"isFollowing"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarUrl   *string `json:"avatarUrl"`
}
