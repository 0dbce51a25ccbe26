// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIKeyPrefix 生成的 API Key 前缀
const APIKeyPrefix = "sk_"

// APIKey 调用方 API Key
type APIKey struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"type:text;uniqueIndex;not null"`
	Owner     string    `json:"owner" gorm:"type:text;not null"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName 表名
func (APIKey) TableName() string {
	return "api_keys"
}

// NewAPIKey 为 owner 创建一个带随机密钥的新 Key
func NewAPIKey(owner string) *APIKey {
	return &APIKey{
		Key:      GenerateKey(),
		Owner:    strings.TrimSpace(owner),
		IsActive: true,
	}
}

// GenerateKey 生成 sk_ 前缀的随机密钥
func GenerateKey() string {
	return APIKeyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Masked 返回仅保留末尾 4 位的密钥，用于日志
func (k *APIKey) Masked() string {
	if k == nil {
		return ""
	}
	if len(k.Key) <= 4 {
		return "****"
	}
	return "****" + k.Key[len(k.Key)-4:]
}
