package metrics

// Score computes the complexity score for a result:
//
//	score = functions + 2*classes + control structures
//
// Imports are deliberately excluded. The function is total over its input
// domain; a zeroed result scores zero.
func Score(r *AnalysisResult) int {
	return r.FunctionCount + 2*r.ClassCount + r.ControlCount
}

// Attach computes and stores the complexity score on r, returning r for
// convenience.
func Attach(r *AnalysisResult) *AnalysisResult {
	r.ComplexityScore = Score(r)
	return r
}
