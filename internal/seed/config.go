package seed

import (
	"fmt"

	"vida-likes/internal/config"

	"github.com/go-playground/validator/v10"
)

// Config 造数参数
type Config struct {
	UserCount         int  `validate:"gte=0"`
	VideoCount        int  `validate:"gte=0"`
	BatchSize         int  `validate:"gt=0,lte=100000"`
	MaxLikesPerVideo  int  `validate:"gte=0"`
	ResetBeforeInsert bool
	// 0 表示按当前时间取种子
	RandomSeed int64
}

// FromConfig 由全局配置的 seed 段生成造数参数
func FromConfig(c *config.SeedConfig) Config {
	return Config{
		UserCount:         c.UserCount,
		VideoCount:        c.VideoCount,
		BatchSize:         c.BatchSize,
		MaxLikesPerVideo:  c.MaxLikesPerVideo,
		ResetBeforeInsert: c.ResetBeforeInsert,
		RandomSeed:        c.RandomSeed,
	}
}

var validate = validator.New()

// Validate 校验参数取值
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid seed config: %w", err)
	}
	return nil
}
