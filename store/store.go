// Package store persists parents and their posts through gorm. Every write runs
// in its own transaction; integrity violations come back as ErrIntegrity.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/snap-point/activity-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrIntegrity signals a rejected write: duplicate uid, missing required
	// column or a post pointing at a parent that does not exist.
	ErrIntegrity = errors.New("integrity violation")
	ErrNotFound  = errors.New("record not found")
)

type Store interface {
	CreateParent(ctx context.Context, p *models.Parent) (*models.Parent, error)
	CreateChild(ctx context.Context, c *models.Child) (*models.Child, error)
	ListParents(ctx context.Context, kind string) ([]*models.Parent, error)
	GetParent(ctx context.Context, kind string, id uint) (*models.Parent, error)
	GetParentByUID(ctx context.Context, kind, uid string) (*models.Parent, error)
	ExistsUID(ctx context.Context, uid string) (bool, error)
	UpdateParent(ctx context.Context, p *models.Parent, u models.ParentUpdate) (*models.Parent, error)
	DeleteParent(ctx context.Context, p *models.Parent) error
	GetChild(ctx context.Context, parentID, id uint) (*models.Child, error)
	UpdateChildImage(ctx context.Context, c *models.Child, image string) error
}

type gormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// CreateParent inserts p together with any appended posts. On failure nothing
// is left behind and the returned parent is nil.
func (s *gormStore) CreateParent(ctx context.Context, p *models.Parent) (*models.Parent, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		// ids assigned before the rollback are meaningless now
		p.ID = 0
		for i := range p.Posts {
			p.Posts[i].ID = 0
			p.Posts[i].ParentID = 0
		}
		return nil, classify(err)
	}
	return p, nil
}

func (s *gormStore) CreateChild(ctx context.Context, c *models.Child) (*models.Child, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite without foreign keys would accept an orphan, so check explicitly
		var count int64
		if err := tx.Model(&models.Parent{}).Where("id = ?", c.ParentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: parent %d does not exist", ErrIntegrity, c.ParentID)
		}
		return tx.Create(c).Error
	})
	if err != nil {
		c.ID = 0
		return nil, classify(err)
	}
	return c, nil
}

// ListParents returns every parent of kind in primary key order, posts included.
func (s *gormStore) ListParents(ctx context.Context, kind string) ([]*models.Parent, error) {
	var parents []*models.Parent
	err := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("children.id ASC")
		}).
		Where("kind = ?", kind).
		Order("parents.id ASC").
		Find(&parents).Error
	if err != nil {
		return nil, err
	}
	return parents, nil
}

func (s *gormStore) GetParent(ctx context.Context, kind string, id uint) (*models.Parent, error) {
	var p models.Parent
	err := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("children.id ASC")
		}).
		Where("kind = ? AND id = ?", kind, id).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *gormStore) GetParentByUID(ctx context.Context, kind, uid string) (*models.Parent, error) {
	var p models.Parent
	err := s.db.WithContext(ctx).
		Where("kind = ? AND uid = ?", kind, uid).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ExistsUID checks uid across all kinds, matching the unique index.
func (s *gormStore) ExistsUID(ctx context.Context, uid string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Parent{}).Where("uid = ?", uid).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateParent applies u to a copy of p and commits it. p is only changed when
// the write succeeds. A record deleted since p was loaded yields ErrNotFound.
func (s *gormStore) UpdateParent(ctx context.Context, p *models.Parent, u models.ParentUpdate) (*models.Parent, error) {
	updated := *p
	if err := updated.ApplyUpdate(u); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&updated).
			Select("*").
			Omit(clause.Associations, "id", "created_at").
			Updates(&updated)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	*p = updated
	return p, nil
}

// DeleteParent removes p and all of its posts in one transaction.
func (s *gormStore) DeleteParent(ctx context.Context, p *models.Parent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", p.ID).Delete(&models.Child{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Parent{}, p.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormStore) GetChild(ctx context.Context, parentID, id uint) (*models.Child, error) {
	var c models.Child
	err := s.db.WithContext(ctx).
		Where("parent_id = ? AND id = ?", parentID, id).
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *gormStore) UpdateChildImage(ctx context.Context, c *models.Child, image string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(c).Update("image", image).Error
	})
	if err != nil {
		return classify(err)
	}
	c.Image = image
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
