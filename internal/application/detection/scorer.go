// Package detection 实现基于摘要的语音来源启发式判定
package detection

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// digestPrefixLen 参与打分的十六进制摘要前缀长度
const digestPrefixLen = 8

// Score 摘要打分结果
type Score struct {
	// Digest 完整 SHA-256 十六进制摘要
	Digest string
	// Base 基础 P(AI)，取值 [0, 0.999]
	Base float64
}

// BaseScore 对音频字节计算确定性的基础 P(AI)
// 相同输入在任意进程中得到相同结果，空输入同样合法
func BaseScore(audio []byte) Score {
	sum := sha256.Sum256(audio)
	digest := hex.EncodeToString(sum[:])

	// 8 位十六进制必然可解析为 uint32
	prefix, _ := strconv.ParseUint(digest[:digestPrefixLen], 16, 32)

	return Score{
		Digest: digest,
		Base:   float64(prefix%1000) / 1000,
	}
}
