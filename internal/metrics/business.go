package metrics

// IncrementUserRegistered increments the registration counter
func (m *Metrics) IncrementUserRegistered() {
	m.safeExecute("IncrementUserRegistered", func() {
		m.UserRegisteredTotal.Inc()
	})
}

// IncrementPostCreated increments the post creation counter
func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// AddCommentsDeleted adds the number of removed comment rows
func (m *Metrics) AddCommentsDeleted(rows int64) {
	if rows <= 0 {
		return
	}
	m.safeExecute("AddCommentsDeleted", func() {
		m.CommentDeletedTotal.Add(float64(rows))
	})
}

// RecordLikeToggle counts a toggle by its resulting state
func (m *Metrics) RecordLikeToggle(liked bool) {
	m.safeExecute("RecordLikeToggle", func() {
		result := "unliked"
		if liked {
			result = "liked"
		}
		m.LikeToggledTotal.WithLabelValues(result).Inc()
	})
}

// AddLikeCounterRepairs adds the number of counters fixed by reconciliation
func (m *Metrics) AddLikeCounterRepairs(n int64) {
	if n <= 0 {
		return
	}
	m.safeExecute("AddLikeCounterRepairs", func() {
		m.LikeCounterRepairs.Add(float64(n))
	})
}

// IncrementRateLimited counts a rejected request
func (m *Metrics) IncrementRateLimited() {
	m.safeExecute("IncrementRateLimited", func() {
		m.RateLimitedTotal.Inc()
	})
}

// SetLiveFeedSubscribers sets the websocket subscriber gauge
func (m *Metrics) SetLiveFeedSubscribers(n int) {
	m.safeExecute("SetLiveFeedSubscribers", func() {
		m.LiveFeedSubscribers.Set(float64(n))
	})
}

// SetUsersTotal sets total users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetPostsTotal sets total posts gauge
func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}

// SetLikesTotal sets total likes gauge
func (m *Metrics) SetLikesTotal(count int64) {
	m.safeExecute("SetLikesTotal", func() {
		m.LikesTotal.Set(float64(count))
	})
}
