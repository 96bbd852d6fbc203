package repository

import (
	"context"
	"fmt"
	"time"

	"mindclass_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const liveCodeTTL = 12 * time.Hour

// TestRepository keeps tests in the relational store. When Redis is set,
// LIVE access codes are indexed there so joins skip the table scan.
type TestRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewTestRepository(db *gorm.DB, rdb *redis.Client) *TestRepository {
	return &TestRepository{DB: db, Redis: rdb, ctx: context.Background()}
}

func liveCodeKey(code string) string {
	return fmt.Sprintf("mindclass:test:live:%s", code)
}

func (r *TestRepository) Create(test *model.Test) error {
	test.EnsureID()
	if err := r.DB.Create(test).Error; err != nil {
		return errors.Wrap(err, "create test")
	}
	r.syncCode(test)
	return nil
}

func (r *TestRepository) Update(test *model.Test) error {
	if err := r.DB.Save(test).Error; err != nil {
		return errors.Wrap(err, "update test")
	}
	r.syncCode(test)
	return nil
}

func (r *TestRepository) syncCode(test *model.Test) {
	if r.Redis == nil || test.AccessCode == "" {
		return
	}
	key := liveCodeKey(test.AccessCode)
	if test.Status == model.TestLive {
		r.Redis.Set(r.ctx, key, test.ID, liveCodeTTL)
		return
	}
	r.Redis.Del(r.ctx, key)
}

func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	if err := r.DB.First(&test, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find test")
	}
	return &test, nil
}

func (r *TestRepository) FindLiveByCode(code string) (*model.Test, error) {
	if r.Redis != nil {
		if id, err := r.Redis.Get(r.ctx, liveCodeKey(code)).Result(); err == nil {
			if test, err := r.FindByID(id); err == nil && test.Status == model.TestLive && test.AccessCode == code {
				return test, nil
			}
			// stale entry
			r.Redis.Del(r.ctx, liveCodeKey(code))
		}
	}

	var test model.Test
	err := r.DB.Where("access_code = ? AND status = ?", code, model.TestLive).First(&test).Error
	if err != nil {
		return nil, notFound(err, "find live test")
	}
	r.syncCode(&test)
	return &test, nil
}

func (r *TestRepository) CodeInUse(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Test{}).
		Where("access_code = ? AND status <> ?", code, model.TestEnded).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count access code")
}

func (r *TestRepository) List() ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Order("created_at DESC").Find(&tests).Error
	return tests, errors.Wrap(err, "list tests")
}

func (r *TestRepository) ListByCreator(creatorID string) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&tests).Error
	return tests, errors.Wrap(err, "list tests by creator")
}

// notFound maps gorm's missing-row error onto ErrNotFound and wraps the rest.
func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, op)
}
