package repository

import (
	"errors"
	"strings"

	"github.com/linkmart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 站点配置数据访问接口
type SettingRepository interface {
	List() ([]models.Setting, error)
	GetByKey(key string) (*models.Setting, error)
	GetManyByKeys(keys []string) ([]models.Setting, error)
	Upsert(key, value, description string) (*models.Setting, error)
	Delete(key string) error
}

// GormSettingRepository GORM 实现
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建配置仓库
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// List 全部配置项
func (r *GormSettingRepository) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Order("key_name ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetByKey 根据键获取配置项
func (r *GormSettingRepository) GetByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key_name = ?", strings.TrimSpace(key)).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// GetManyByKeys 批量获取配置项
func (r *GormSettingRepository) GetManyByKeys(keys []string) ([]models.Setting, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var settings []models.Setting
	if err := r.db.Where("key_name IN ?", keys).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert 写入配置项，键冲突时在数据库侧覆盖，避免读改写竞态
func (r *GormSettingRepository) Upsert(key, value, description string) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	columns := []string{"value", "updated_at"}
	if description != "" {
		columns = append(columns, "description")
	}
	setting := models.Setting{KeyName: key, Value: value, Description: description}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key_name"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	// 冲突路径下 Create 不回填已有行的主键，按键重读一次
	return r.GetByKey(key)
}

// Delete 删除配置项
func (r *GormSettingRepository) Delete(key string) error {
	return r.db.Where("key_name = ?", strings.TrimSpace(key)).Delete(&models.Setting{}).Error
}
