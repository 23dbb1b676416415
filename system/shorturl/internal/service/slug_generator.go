package service

import (
	"crypto/rand"
	"math/big"
)

// 短码字符表：去掉易混淆的 0/o/1/l
const slugChars = "abcdefghijkmnpqrstuvwxyz23456789"

// DefaultSlugLength 默认短码长度
const DefaultSlugLength = 6

// GenerateSlug 生成指定长度的随机短码
func GenerateSlug(length int) (string, error) {
	if length <= 0 {
		length = DefaultSlugLength
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(slugChars)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = slugChars[n.Int64()]
	}

	return string(result), nil
}
