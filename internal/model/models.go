package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&AccessToken{},
		&Quiz{},
		&Question{},
		&Option{},
		&Result{},
		&ResultQuiz{},
		&ResultEssay{},
		&Feed{},
		&FeedReply{},
		&Materi{},
	}
}
