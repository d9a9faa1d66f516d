package campaigns

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ActiveByShop(ctx context.Context, shop string) ([]Campaign, error) {
	var items []Campaign
	err := r.db.WithContext(ctx).
		Where("shop = ? AND status = ?", shop, StatusActive).
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) ListByShop(ctx context.Context, shop string, page, limit int) ([]Campaign, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&Campaign{}).
		Where("shop = ?", shop).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Campaign
	err := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id, shop string) (Campaign, error) {
	var c Campaign
	err := r.db.WithContext(ctx).
		First(&c, "id = ? AND shop = ?", id, shop).Error
	return c, err
}

func (r *Repo) Create(ctx context.Context, c Campaign) (Campaign, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Campaign{}, err
	}
	return c, nil
}

func (r *Repo) Update(ctx context.Context, id, shop string, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&Campaign{}).
		Where("id = ? AND shop = ?", id, shop).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id, shop string) error {
	return r.db.WithContext(ctx).
		Delete(&Campaign{}, "id = ? AND shop = ?", id, shop).Error
}

// DeleteByShop removes every campaign of a shop (app uninstall webhook).
func (r *Repo) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Campaign{}, "shop = ?", shop)
	return res.RowsAffected, res.Error
}

func (r *Repo) UpdateStatusByShop(ctx context.Context, shop, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Campaign{}).
		Where("shop = ?", shop).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *Repo) CountByShop(ctx context.Context, shop string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Campaign{}).
		Where("shop = ?", shop).
		Count(&n).Error
	return n, err
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
