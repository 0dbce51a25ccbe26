package detection

// Result 单次检测的完整结果
type Result struct {
	Score         Score
	Features      Features
	Probabilities Probabilities
	Verdict
}

// Detect 依次执行摘要打分、启发式调整与分类，纯函数
func Detect(audio []byte) Result {
	score := BaseScore(audio)
	features := ExtractFeatures(audio)
	probs := Adjust(score.Base, features)

	return Result{
		Score:         score,
		Features:      features,
		Probabilities: probs,
		Verdict:       Classify(probs, features),
	}
}
