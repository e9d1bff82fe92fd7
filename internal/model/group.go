package model

import "time"

type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateGroupRequest is the payload for creating a group. The creator
// becomes the group's first member.
type CreateGroupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}
