package detection

import (
	"math"

	"voice-detection-api/internal/domain/entity"
)

const (
	explanationAIEncoded    = "Unnatural pitch consistency and encoding artifacts consistent with synthetic speech generation pipelines detected."
	explanationAIPlain      = "Spectral analysis indicates lack of natural breath pauses and consistent pitch modulation typical of AI synthesis."
	explanationHumanEncoded = "Natural pitch variation and irregular breathing patterns detected despite re-encoding artifacts, indicating human speech."
	explanationHumanPlain   = "Natural pitch variation, organic noise floor, and irregular breathing patterns detected, indicating human speech."
)

// Verdict 分类结论
type Verdict struct {
	Classification  entity.Classification
	ConfidenceScore float64
	Explanation     string
}

// Classify 取概率较大的一类；相等时判为 HUMAN
// 判定在取整前完成，ConfidenceScore 为所选类别概率保留两位小数
func Classify(p Probabilities, f Features) Verdict {
	v := Verdict{Classification: entity.ClassificationHuman}
	chosen := p.Human
	if p.AI > p.Human {
		v.Classification = entity.ClassificationAIGenerated
		chosen = p.AI
	}

	v.ConfidenceScore = roundScore(chosen)
	v.Explanation = Explanation(v.Classification, f.EncoderTag)
	return v
}

// Explanation 根据分类与编码器标记选取说明文本
func Explanation(c entity.Classification, encoderTag bool) string {
	switch {
	case c == entity.ClassificationAIGenerated && encoderTag:
		return explanationAIEncoded
	case c == entity.ClassificationAIGenerated:
		return explanationAIPlain
	case encoderTag:
		return explanationHumanEncoded
	default:
		return explanationHumanPlain
	}
}

func roundScore(p float64) float64 {
	return math.Min(1, math.Max(0, math.Round(p*100)/100))
}
