package entity

import "time"

type Follow struct {
	Id         string    `json:"id"`
	FollowerId string    `json:"followerId"`
	FolloweeId string    `json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Interaction rows feed the external recommendation service. They are written
// opportunistically and never fail the operation that produced them.
type Interaction struct {
	Id              string    `json:"id"`
	UserId          string    `json:"userId"`
	InteractionType string    `json:"interactionType"`
	TargetId        string    `json:"targetId"`
	TargetType      string    `json:"targetType"`
	CreatedAt       time.Time `json:"createdAt"`
}

const (
	InteractionBlogView = "blog_view"
	InteractionBlogSave = "blog_save"
	InteractionFollow   = "follow"
	InteractionMovieAdd = "movie_add"
)
