package constants

// CurrUserKey is the session key holding the logged-in user's ID. The same
// key is used for the gin context entry set by the auth middleware.
const CurrUserKey = "curr_user"

// CurrentUserModelKey is the gin context key holding the loaded user model.
const CurrentUserModelKey = "curr_user_model"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "microblog_session"

// MinPasswordLength is the minimum allowed password length.
const MinPasswordLength = 6

// MaxUsernameLength is the maximum allowed username length.
const MaxUsernameLength = 50

// MaxMessageLength is the maximum message text length, enforced both by the
// column width and by a persistence hook.
const MaxMessageLength = 140

// HomeTimelineLimit caps the number of messages shown on the home timeline.
const HomeTimelineLimit = 100

// DefaultImageURL is used when a user signs up without a profile image.
const DefaultImageURL = "https://i.pravatar.cc/150?u=default"

// DefaultHeaderImageURL is used when a user has no header image.
const DefaultHeaderImageURL = "https://picsum.photos/850/250"

// Pagination bounds for user listings.
const (
	MinPageSize     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100
)
