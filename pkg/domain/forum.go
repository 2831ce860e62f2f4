package domain

// ForumPost is a discussion thread inside a course forum.
type ForumPost struct {
	ID         int64        `json:"id"`
	Course     *Course      `json:"course,omitempty"`
	Author     *User        `json:"author,omitempty"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Pinned     bool         `json:"isPinned"`
	Closed     bool         `json:"isClosed"`
	CreatedAt  Timestamp    `json:"createdAt"`
	UpdatedAt  Timestamp    `json:"updatedAt"`
	Replies    []ForumReply `json:"replies,omitempty"`
	ReplyCount int          `json:"replyCount,omitempty"`
}

// ForumReply is a reply to a forum post.
type ForumReply struct {
	ID        int64     `json:"id"`
	Author    *User     `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}
