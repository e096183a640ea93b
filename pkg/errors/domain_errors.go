package errors

var (
	// Identity
	ErrUserNotFound  = NotFound("user not found")
	ErrEmailTaken    = Conflict("email is already registered")
	ErrUsernameTaken = Conflict("username is already taken")

	// Friendship
	ErrSelfFriendRequest       = InvalidArg("cannot send a friend request to yourself")
	ErrAlreadyFriendsOrPending = Conflict("already friends or request pending")
	ErrFriendRequestNotFound   = NotFound("friend request not found")
	ErrFriendshipNotFound      = NotFound("friendship not found")
	ErrNotFriends              = Forbidden("you are not friends with this user")

	// Messages
	ErrMessageNotFound = NotFound("message not found")
	ErrEmptyMessage    = InvalidArg("message content cannot be empty")
	ErrNotSender       = Forbidden("you can only delete your own messages")
	ErrNotReceiver     = Forbidden("you can only mark messages sent to you as seen")

	// Notifications
	ErrNotificationNotFound = NotFound("notification not found")
)
