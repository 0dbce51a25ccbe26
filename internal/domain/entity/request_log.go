// Package entity 定义领域实体
package entity

import "time"

// Language 支持的声明语言
type Language string

const (
	LanguageTamil     Language = "Tamil"
	LanguageEnglish   Language = "English"
	LanguageHindi     Language = "Hindi"
	LanguageMalayalam Language = "Malayalam"
	LanguageTelugu    Language = "Telugu"
)

// Languages 返回全部支持的语言，顺序固定
func Languages() []Language {
	return []Language{LanguageTamil, LanguageEnglish, LanguageHindi, LanguageMalayalam, LanguageTelugu}
}

// Classification 分类结果
type Classification string

const (
	ClassificationAIGenerated Classification = "AI_GENERATED"
	ClassificationHuman       Classification = "HUMAN"
)

// AudioFormatMP3 唯一接受的音频格式
const AudioFormatMP3 = "mp3"

// RequestLog 一次成功检测的请求日志，写入后不可变
type RequestLog struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	APIKeyID        *uint          `json:"apiKeyId" gorm:"column:api_key_id;index"`
	Language        Language       `json:"language" gorm:"type:text;not null"`
	Classification  Classification `json:"classification" gorm:"type:text;not null;index"`
	ConfidenceScore float64        `json:"confidenceScore" gorm:"type:double precision;not null"`
	Explanation     string         `json:"explanation" gorm:"type:text"`
	Timestamp       time.Time      `json:"timestamp" gorm:"not null;index;autoCreateTime"`
	ClientIP        string         `json:"clientIp" gorm:"column:client_ip;type:text"`

	APIKey *APIKey `json:"-" gorm:"foreignKey:APIKeyID;constraint:OnDelete:SET NULL"`
}

// TableName 表名
func (RequestLog) TableName() string {
	return "request_logs"
}

// ClassificationCounts 按分类聚合的请求数
type ClassificationCounts struct {
	Total int64 `json:"totalRequests"`
	AI    int64 `json:"aiDetected"`
	Human int64 `json:"humanDetected"`
}
