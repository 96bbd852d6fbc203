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

const friendCacheTTL = 24 * time.Hour

// UserRepository stores users and their friend lists. Friend ids are
// cached in a Redis set per user when Redis is configured.
type UserRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewUserRepository(db *gorm.DB, rdb *redis.Client) *UserRepository {
	return &UserRepository{DB: db, Redis: rdb, ctx: context.Background()}
}

func friendsKey(uid string) string {
	return fmt.Sprintf("mindclass:friends:%s", uid)
}

func (r *UserRepository) Create(user *model.User) error {
	return errors.Wrap(r.DB.Create(user).Error, "create user")
}

func (r *UserRepository) Update(user *model.User) error {
	if err := r.DB.Save(user).Error; err != nil {
		return errors.Wrap(err, "update user")
	}
	r.dropFriendCache(user.ID)
	return nil
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find user")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ids []string) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, errors.Wrap(err, "find users")
}

func (r *UserRepository) Count(role model.UserRole) (int64, error) {
	var count int64
	db := r.DB.Model(&model.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	err := db.Count(&count).Error
	return count, errors.Wrap(err, "count users")
}

func (r *UserRepository) AddFriendship(a, b string) error {
	return r.updatePair(a, b, func(u *model.User, other string) {
		if !u.HasFriend(other) {
			u.Friends = append(u.Friends, other)
		}
	})
}

func (r *UserRepository) RemoveFriendship(a, b string) error {
	return r.updatePair(a, b, func(u *model.User, other string) {
		kept := u.Friends[:0]
		for _, id := range u.Friends {
			if id != other {
				kept = append(kept, id)
			}
		}
		u.Friends = kept
	})
}

func (r *UserRepository) updatePair(a, b string, apply func(u *model.User, other string)) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var ua, ub model.User
		if err := tx.First(&ua, "id = ?", a).Error; err != nil {
			return notFound(err, "load user")
		}
		if err := tx.First(&ub, "id = ?", b).Error; err != nil {
			return notFound(err, "load user")
		}
		apply(&ua, b)
		apply(&ub, a)
		if err := tx.Save(&ua).Error; err != nil {
			return err
		}
		return tx.Save(&ub).Error
	})
	if err == nil {
		r.dropFriendCache(a)
		r.dropFriendCache(b)
	}
	return err
}

func (r *UserRepository) dropFriendCache(uid string) {
	if r.Redis != nil {
		r.Redis.Del(r.ctx, friendsKey(uid))
	}
}

func (r *UserRepository) FriendIDs(uid string) ([]string, error) {
	if r.Redis != nil {
		cached, err := r.Redis.SMembers(r.ctx, friendsKey(uid)).Result()
		if err == nil && len(cached) > 0 {
			ids := cached[:0]
			for _, id := range cached {
				// placeholder for an empty list
				if id != "-" {
					ids = append(ids, id)
				}
			}
			return ids, nil
		}
	}

	user, err := r.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if r.Redis != nil {
		key := friendsKey(uid)
		pipe := r.Redis.Pipeline()
		if len(user.Friends) == 0 {
			pipe.SAdd(r.ctx, key, "-")
			pipe.Expire(r.ctx, key, 5*time.Minute)
		} else {
			for _, id := range user.Friends {
				pipe.SAdd(r.ctx, key, id)
			}
			pipe.Expire(r.ctx, key, friendCacheTTL)
		}
		pipe.Exec(r.ctx)
	}
	return user.Friends, nil
}
