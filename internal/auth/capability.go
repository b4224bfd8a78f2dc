package auth

import "github.com/lshigami/classquiz/internal/model"

// Capability is an action a route can require of the caller.
type Capability int

const (
	CapSubmitAnswers Capability = iota + 1
	CapViewOwnResults
	CapManageQuizzes
	CapGradeResults
	CapManageMateri
)

var capabilityNames = map[Capability]string{
	CapSubmitAnswers:  "submit_answers",
	CapViewOwnResults: "view_own_results",
	CapManageQuizzes:  "manage_quizzes",
	CapGradeResults:   "grade_results",
	CapManageMateri:   "manage_materi",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

var roleCapabilities = map[model.Role][]Capability{
	model.RoleStudent: {CapSubmitAnswers, CapViewOwnResults},
	model.RoleTeacher: {CapManageQuizzes, CapGradeResults, CapManageMateri},
	model.RoleAdmin:   {CapManageQuizzes, CapGradeResults, CapManageMateri},
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID  uint
	Name    string
	Role    model.Role
	TokenID string
}

// Can reports whether the principal's role grants c.
func (p *Principal) Can(c Capability) bool {
	if p == nil {
		return false
	}
	for _, granted := range roleCapabilities[p.Role] {
		if granted == c {
			return true
		}
	}
	return false
}

// SeesAnswerKey reports whether option correctness may be shown to the principal.
func (p *Principal) SeesAnswerKey() bool {
	return p.Can(CapManageQuizzes)
}
