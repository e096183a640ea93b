package dto

import "github.com/google/uuid"

type FriendRequestRequest struct {
	ReceiverID uuid.UUID `json:"receiverId" binding:"required"`
}

type UpdateProfileRequest struct {
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}
