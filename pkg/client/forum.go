package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/campusmaster/campus/pkg/domain"
)

// PostRequest is the create/update payload for a forum post.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReplyRequest is the create/update payload for a forum reply.
type ReplyRequest struct {
	Content string `json:"content"`
}

// CoursePosts lists the forum posts of a course, pinned first.
func (c *Client) CoursePosts(ctx context.Context, courseID int64) ([]domain.ForumPost, error) {
	var out []domain.ForumPost
	if err := c.get(ctx, "/api/forum/course/"+idPath(courseID)+"/posts", &out); err != nil {
		return nil, fmt.Errorf("client.CoursePosts: %w", err)
	}
	return out, nil
}

// SearchPosts searches the forum posts of a course.
func (c *Client) SearchPosts(ctx context.Context, courseID int64, query string) ([]domain.ForumPost, error) {
	var out []domain.ForumPost
	path := "/api/forum/course/" + idPath(courseID) + "/posts/search?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("client.SearchPosts: %w", err)
	}
	return out, nil
}

// GetPost fetches a single forum post.
func (c *Client) GetPost(ctx context.Context, postID int64) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := c.get(ctx, "/api/forum/posts/"+idPath(postID), &p); err != nil {
		return nil, fmt.Errorf("client.GetPost: %w", err)
	}
	return &p, nil
}

// CreatePost creates a forum post in a course.
func (c *Client) CreatePost(ctx context.Context, courseID int64, req PostRequest) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := c.post(ctx, "/api/forum/course/"+idPath(courseID)+"/posts", req, &p); err != nil {
		return nil, fmt.Errorf("client.CreatePost: %w", err)
	}
	return &p, nil
}

// UpdatePost edits a forum post.
func (c *Client) UpdatePost(ctx context.Context, postID int64, req PostRequest) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := c.put(ctx, "/api/forum/posts/"+idPath(postID), req, &p); err != nil {
		return nil, fmt.Errorf("client.UpdatePost: %w", err)
	}
	return &p, nil
}

// DeletePost deletes a forum post.
func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	if err := c.del(ctx, "/api/forum/posts/"+idPath(postID)); err != nil {
		return fmt.Errorf("client.DeletePost: %w", err)
	}
	return nil
}

// TogglePin flips the pinned flag of a post.
func (c *Client) TogglePin(ctx context.Context, postID int64) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := c.put(ctx, "/api/forum/posts/"+idPath(postID)+"/pin", nil, &p); err != nil {
		return nil, fmt.Errorf("client.TogglePin: %w", err)
	}
	return &p, nil
}

// ToggleClose flips the closed flag of a post.
func (c *Client) ToggleClose(ctx context.Context, postID int64) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := c.put(ctx, "/api/forum/posts/"+idPath(postID)+"/close", nil, &p); err != nil {
		return nil, fmt.Errorf("client.ToggleClose: %w", err)
	}
	return &p, nil
}

// PostReplies lists the replies of a post, oldest first.
func (c *Client) PostReplies(ctx context.Context, postID int64) ([]domain.ForumReply, error) {
	var out []domain.ForumReply
	if err := c.get(ctx, "/api/forum/posts/"+idPath(postID)+"/replies", &out); err != nil {
		return nil, fmt.Errorf("client.PostReplies: %w", err)
	}
	return out, nil
}

// CreateReply replies to a post. Closed posts reject replies with 400.
func (c *Client) CreateReply(ctx context.Context, postID int64, req ReplyRequest) (*domain.ForumReply, error) {
	var r domain.ForumReply
	if err := c.post(ctx, "/api/forum/posts/"+idPath(postID)+"/replies", req, &r); err != nil {
		return nil, fmt.Errorf("client.CreateReply: %w", err)
	}
	return &r, nil
}

// UpdateReply edits a reply.
func (c *Client) UpdateReply(ctx context.Context, replyID int64, req ReplyRequest) (*domain.ForumReply, error) {
	var r domain.ForumReply
	if err := c.put(ctx, "/api/forum/replies/"+idPath(replyID), req, &r); err != nil {
		return nil, fmt.Errorf("client.UpdateReply: %w", err)
	}
	return &r, nil
}

// DeleteReply deletes a reply.
func (c *Client) DeleteReply(ctx context.Context, replyID int64) error {
	if err := c.del(ctx, "/api/forum/replies/"+idPath(replyID)); err != nil {
		return fmt.Errorf("client.DeleteReply: %w", err)
	}
	return nil
}
