package detection

import (
	"bytes"
	"math"
)

const (
	// EncoderTag ffmpeg (libavformat) 写入的编码器标记
	EncoderTag = "Lavf"

	// ID3Signature MP3 ID3v2 头部签名
	ID3Signature = "ID3"

	// HeaderWindow 检查编码器标记的头部字节数
	HeaderWindow = 100

	// SmallFileThreshold 小于该字节数视为小文件
	SmallFileThreshold = 5000

	// LargeFileThreshold 大于该字节数视为大文件
	LargeFileThreshold = 100000

	EncoderTagBonus  = 0.25
	SmallFileBonus   = 0.15
	LargeFilePenalty = 0.10

	// MaxAIProbability 规则上调后 P(AI) 的上限
	MaxAIProbability = 0.98

	// MinAIProbability 规则下调后 P(AI) 的下限
	MinAIProbability = 0.02
)

// Features 从音频字节中提取的结构特征
type Features struct {
	EncoderTag bool `json:"encoderTag"`
	ID3Header  bool `json:"id3Header"`
	Size       int  `json:"size"`
}

// ExtractFeatures 提取启发式所需的结构特征
func ExtractFeatures(audio []byte) Features {
	header := audio
	if len(header) > HeaderWindow {
		header = header[:HeaderWindow]
	}
	return Features{
		EncoderTag: bytes.Contains(header, []byte(EncoderTag)),
		ID3Header:  bytes.HasPrefix(audio, []byte(ID3Signature)),
		Size:       len(audio),
	}
}

// Probabilities 二分类概率，AI + Human = 1
type Probabilities struct {
	AI    float64 `json:"ai"`
	Human float64 `json:"human"`
}

// rule 单条偏置规则；Delta 为正时以 MaxAIProbability 截断，为负时以 MinAIProbability 截断
type rule struct {
	Name    string
	Applies func(Features) bool
	Delta   float64
}

// rules 按顺序执行，每条规则截断后再执行下一条
var rules = []rule{
	{
		Name:    "encoder_tag",
		Applies: func(f Features) bool { return f.EncoderTag },
		Delta:   EncoderTagBonus,
	},
	{
		Name:    "small_file",
		Applies: func(f Features) bool { return f.Size < SmallFileThreshold },
		Delta:   SmallFileBonus,
	},
	{
		Name:    "large_untagged_file",
		Applies: func(f Features) bool { return f.Size > LargeFileThreshold && !f.EncoderTag },
		Delta:   -LargeFilePenalty,
	},
}

// Adjust 在基础分上按顺序应用偏置规则，返回最终概率对
func Adjust(base float64, f Features) Probabilities {
	pAI := math.Min(1, math.Max(0, base))

	for _, r := range rules {
		if !r.Applies(f) {
			continue
		}
		if r.Delta >= 0 {
			pAI = math.Min(MaxAIProbability, pAI+r.Delta)
		} else {
			pAI = math.Max(MinAIProbability, pAI+r.Delta)
		}
	}

	return Probabilities{AI: pAI, Human: 1 - pAI}
}

// AppliedRules 返回对给定特征生效的规则名，用于日志
func AppliedRules(f Features) []string {
	var names []string
	for _, r := range rules {
		if r.Applies(f) {
			names = append(names, r.Name)
		}
	}
	return names
}
