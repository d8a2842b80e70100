package testdb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type parent struct {
	ID string `gorm:"primaryKey"`
}

type child struct {
	ID       string  `gorm:"primaryKey"`
	ParentID string  `gorm:"not null"`
	Parent   *parent `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
}

func TestOpen_TranslatesForeignKeyFailures(t *testing.T) {
	db := Open(t, &parent{}, &child{})
	p := parent{ID: uuid.NewString()}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&child{ID: uuid.NewString(), ParentID: p.ID}).Error)

	t.Run("delete of referenced row", func(t *testing.T) {
		err := db.Delete(&parent{}, "id = ?", p.ID).Error

		assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
	})

	t.Run("insert with dangling reference", func(t *testing.T) {
		err := db.Create(&child{ID: uuid.NewString(), ParentID: uuid.NewString()}).Error

		assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
	})

	t.Run("other constraint errors are left alone", func(t *testing.T) {
		err := db.Create(&p).Error

		assert.Error(t, err)
		assert.NotErrorIs(t, err, gorm.ErrForeignKeyViolated)
	})
}
