package store

// Interface compliance for both implementations of every store.
var (
	_ CommentStore = (*PostgresCommentStore)(nil)
	_ CommentStore = (*InMemoryCommentStore)(nil)
	_ LikeStore    = (*PostgresLikeStore)(nil)
	_ LikeStore    = (*InMemoryLikeStore)(nil)
	_ PostStore    = (*PostgresPostStore)(nil)
	_ PostStore    = (*InMemoryPostStore)(nil)
	_ MessageStore = (*PostgresMessageStore)(nil)
	_ MessageStore = (*InMemoryMessageStore)(nil)
	_ UserStore    = (*PostgresUserStore)(nil)
	_ UserStore    = (*InMemoryUserStore)(nil)
)
