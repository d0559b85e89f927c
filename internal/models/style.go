package models

// StyleLabel is a categorical summary of a fighter's dominant way of winning
type StyleLabel string

const (
	StyleStriker            StyleLabel = "Striker"
	StyleSubmissionGrappler StyleLabel = "Submission Grappler"
	StyleControlGrappler    StyleLabel = "Control Grappler"
	StyleMixed              StyleLabel = "Mixed"
	StyleBalanced           StyleLabel = "Balanced"
	StyleUnknown            StyleLabel = "Unknown"
)

// PreferredMethod returns the win method most correlated with the style,
// used to build similar-style opponent pools. ok is false for styles with
// no dominant method.
func (s StyleLabel) PreferredMethod() (WinMethod, bool) {
	switch s {
	case StyleStriker:
		return MethodKO, true
	case StyleSubmissionGrappler:
		return MethodSubmission, true
	case StyleControlGrappler:
		return MethodDecision, true
	default:
		return "", false
	}
}
