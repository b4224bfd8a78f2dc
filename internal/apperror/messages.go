package apperror

// Client-facing messages.
const (
	MsgSuccess          = "Success"
	MsgFailed           = "Failed"
	MsgNotFound         = "Data not found"
	MsgValidation       = "Validation error"
	MsgUnauthorized     = "Unauthenticated"
	MsgForbidden        = "Forbidden"
	MsgSubmitFailed     = "Submission failed"
	MsgAlreadySubmitted = "User has already submitted this quiz"
	MsgDeadlinePassed   = "The submission deadline has passed"
	MsgWrongQuizType    = "This quiz does not accept this kind of answer"
	MsgAnswersSaved     = "Answers saved"
	MsgAnswersNotSaved  = "Answer saving failed"
	MsgCreated          = "Data created"
	MsgUpdated          = "Data updated"
	MsgDeleted          = "Data deleted"
	MsgRegistered       = "Registration successful"
	MsgLoggedIn         = "Login successful"
	MsgLoggedOut        = "Logout successful"
	MsgBadCredentials   = "Email or password is incorrect"
	MsgScoreSaved       = "Score saved"
	MsgFileMissing      = "File not found"
	MsgImageMissing     = "Image not found"
	MsgOptionDeleted    = "Option deleted"
)

// AlreadySubmitted is returned by the submission gate for a repeated attempt.
func AlreadySubmitted() *Error {
	return BusinessRule(MsgSubmitFailed, MsgAlreadySubmitted)
}

// DeadlinePassed is returned by the submission gate once the quiz is closed.
func DeadlinePassed() *Error {
	return BusinessRule(MsgSubmitFailed, MsgDeadlinePassed)
}
