// Package presenter maps domain models to their wire representations.
// Media fields hold relative storage paths; the presenter resolves them
// against a base URL injected once at startup.
package presenter

import (
	"strings"
	"time"

	"ripple/internal/models"
)

// Presenter renders API response bodies.
type Presenter struct {
	mediaBaseURL string
}

// New returns a Presenter resolving media paths against mediaBaseURL.
// An empty base leaves relative paths unchanged.
func New(mediaBaseURL string) *Presenter {
	return &Presenter{mediaBaseURL: strings.TrimRight(mediaBaseURL, "/")}
}

// MediaURL resolves a stored media path to the URL clients should fetch.
// Empty paths and already-absolute URLs pass through untouched.
func (p *Presenter) MediaURL(path string) string {
	if path == "" || p.mediaBaseURL == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return p.mediaBaseURL + "/" + strings.TrimLeft(path, "/")
}

// UserDTO is the wire form of a user.
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ProfileDTO is the wire form of a profile.
type ProfileDTO struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Bio          string `json:"bio"`
	Location     string `json:"location"`
	Avatar       string `json:"avatar"`
	Cover        string `json:"cover"`
	FriendsCount int    `json:"friends_count"`
}

// CommentDTO is the wire form of a comment.
type CommentDTO struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	User      UserDTO   `json:"user"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SharedPostDTO is the one-level summary of a shared original embedded
// in a share. It never nests another share.
type SharedPostDTO struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Video     string    `json:"video,omitempty"`
	User      UserDTO   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDTO is the wire form of a post.
type PostDTO struct {
	ID            uint           `json:"id"`
	Content       string         `json:"content"`
	Image         string         `json:"image,omitempty"`
	Video         string         `json:"video,omitempty"`
	Visibility    string         `json:"visibility"`
	User          UserDTO        `json:"user"`
	SharedPost    *SharedPostDTO `json:"shared_post,omitempty"`
	LikesCount    int            `json:"likes_count"`
	CommentsCount int            `json:"comments_count"`
	Liked         bool           `json:"liked"`
	Comments      []CommentDTO   `json:"comments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// MessageDTO is the wire form of a direct message.
type MessageDTO struct {
	ID        uint      `json:"id"`
	Sender    UserDTO   `json:"sender"`
	Receiver  UserDTO   `json:"receiver"`
	Content   string    `json:"content"`
	File      string    `json:"file,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryDTO is the wire form of a story.
type StoryDTO struct {
	ID        uint      `json:"id"`
	User      UserDTO   `json:"user"`
	File      string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
}

// User renders a user summary. The avatar comes from the preloaded
// profile when present.
func (p *Presenter) User(u *models.User) UserDTO {
	dto := UserDTO{
		ID:       u.ID,
		Username: u.Username,
	}
	if u.Profile != nil {
		dto.Avatar = p.MediaURL(u.Profile.Avatar)
	}
	return dto
}

// Account renders the authenticated user's own view, which includes the
// email address.
func (p *Presenter) Account(u *models.User) UserDTO {
	dto := p.User(u)
	dto.Email = u.Email
	return dto
}

// Users renders a slice of user summaries.
func (p *Presenter) Users(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, p.User(&users[i]))
	}
	return out
}

// Profile renders a profile with its friend count.
func (p *Presenter) Profile(profile *models.Profile, username string, friendsCount int) ProfileDTO {
	return ProfileDTO{
		UserID:       profile.UserID,
		Username:     username,
		Bio:          profile.Bio,
		Location:     profile.Location,
		Avatar:       p.MediaURL(profile.Avatar),
		Cover:        p.MediaURL(profile.Cover),
		FriendsCount: friendsCount,
	}
}

// Comment renders a comment.
func (p *Presenter) Comment(c *models.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		Content:   c.Content,
		User:      p.User(&c.User),
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
}

// Comments renders a slice of comments.
func (p *Presenter) Comments(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, p.Comment(&comments[i]))
	}
	return out
}

// Post renders a post, embedding its comments and, for shares, a
// one-level summary of the original.
func (p *Presenter) Post(post *models.Post) PostDTO {
	dto := PostDTO{
		ID:            post.ID,
		Content:       post.Content,
		Image:         p.MediaURL(post.Image),
		Video:         p.MediaURL(post.Video),
		Visibility:    post.Visibility,
		User:          p.User(&post.User),
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		Liked:         post.Liked,
		CreatedAt:     post.CreatedAt,
	}
	if post.SharedPost != nil {
		dto.SharedPost = &SharedPostDTO{
			ID:        post.SharedPost.ID,
			Content:   post.SharedPost.Content,
			Image:     p.MediaURL(post.SharedPost.Image),
			Video:     p.MediaURL(post.SharedPost.Video),
			User:      p.User(&post.SharedPost.User),
			CreatedAt: post.SharedPost.CreatedAt,
		}
	}
	if len(post.Comments) > 0 {
		dto.Comments = p.Comments(post.Comments)
	}
	return dto
}

// Posts renders a slice of posts.
func (p *Presenter) Posts(posts []*models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, post := range posts {
		out = append(out, p.Post(post))
	}
	return out
}

// Message renders a direct message.
func (p *Presenter) Message(m *models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Sender:    p.User(&m.Sender),
		Receiver:  p.User(&m.Receiver),
		Content:   m.Content,
		File:      p.MediaURL(m.File),
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// Messages renders a slice of messages.
func (p *Presenter) Messages(messages []models.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(messages))
	for i := range messages {
		out = append(out, p.Message(&messages[i]))
	}
	return out
}

// Story renders a story.
func (p *Presenter) Story(s *models.Story) StoryDTO {
	return StoryDTO{
		ID:        s.ID,
		User:      p.User(&s.User),
		File:      p.MediaURL(s.File),
		CreatedAt: s.CreatedAt,
	}
}

// Stories renders a slice of stories.
func (p *Presenter) Stories(stories []models.Story) []StoryDTO {
	out := make([]StoryDTO, 0, len(stories))
	for i := range stories {
		out = append(out, p.Story(&stories[i]))
	}
	return out
}
