package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/slot-booking/internal/model"
)

type AvailabilityRepository interface {
	// Открыт ли день для бронирования. Нет записи: закрыт.
	IsOpen(ctx context.Context, date time.Time) (bool, error)
	// Запись на дату.
	GetByDate(ctx context.Context, date time.Time) (*model.AdminAvailability, error)
	// Создать или обновить запись на дату (последняя запись выигрывает).
	Upsert(ctx context.Context, date time.Time, open bool, notes string) (*model.AdminAvailability, error)
	// Записи с датами в [from, to] включительно, по возрастанию даты.
	ListBetween(ctx context.Context, from, to time.Time) ([]model.AdminAvailability, error)
}

type GormAvailabilityRepository struct {
	db *gorm.DB
}

func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

// dateKey берёт календарную дату в часовом поясе значения и нормализует к полуночи UTC.
func dateKey(date time.Time) datatypes.Date {
	y, m, d := date.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (r *GormAvailabilityRepository) IsOpen(ctx context.Context, date time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminAvailability{}).
		Where("available_date = ? AND is_available = ?", dateKey(date), true).
		Count(&n).Error
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *GormAvailabilityRepository) GetByDate(ctx context.Context, date time.Time) (*model.AdminAvailability, error) {
	var a model.AdminAvailability
	if err := r.db.WithContext(ctx).First(&a, "available_date = ?", dateKey(date)).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *GormAvailabilityRepository) Upsert(
	ctx context.Context,
	date time.Time,
	open bool,
	notes string,
) (*model.AdminAvailability, error) {
	rec := model.AdminAvailability{
		AvailableDate: dateKey(date),
		IsAvailable:   open,
		Notes:         notes,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "available_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_available", "notes", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	// При конфликте ID в rec не совпадает с сохранённым: перечитываем.
	return r.GetByDate(ctx, date)
}

func (r *GormAvailabilityRepository) ListBetween(ctx context.Context, from, to time.Time) ([]model.AdminAvailability, error) {
	var records []model.AdminAvailability
	err := r.db.WithContext(ctx).
		Where("available_date >= ? AND available_date <= ?", dateKey(from), dateKey(to)).
		Order("available_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, translate(err)
	}
	return records, nil
}
