package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 汇总各仓储，并负责开启事务
type Store struct {
	db *gorm.DB

	Users      *UserRepository
	Videos     *VideoRepository
	Likes      *LikeRepository
	Statistics *StatisticsRepository
	Seed       *SeedRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Videos:     NewVideoRepository(db),
		Likes:      NewLikeRepository(db),
		Statistics: NewStatisticsRepository(db),
		Seed:       NewSeedRepository(db),
	}
}

// Tx 单个事务内可用的仓储，所有操作共用同一连接，一起提交或回滚
type Tx struct {
	Videos *VideoRepository
	Likes  *LikeRepository
}

// WithinTx 在一个事务内执行 fn；fn 返回错误则回滚并原样返回该错误
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Tx) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		fnErr = fn(&Tx{
			Videos: NewVideoRepository(gtx),
			Likes:  NewLikeRepository(gtx),
		})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return translateError(err)
}
