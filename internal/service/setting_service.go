package service

import (
	"strings"

	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"
)

// publicSettingKeys 允许暴露给前台的配置键白名单
var publicSettingKeys = []string{
	constants.SettingKeySiteName,
	constants.SettingKeySiteTagline,
	constants.SettingKeyContactEmail,
	constants.SettingKeyCurrency,
	constants.SettingKeyShippingFlatFee,
	constants.SettingKeyTaxRate,
}

// SettingService 站点配置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建配置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// List 全部配置项
func (s *SettingService) List() ([]models.Setting, error) {
	return s.repo.List()
}

// Get 根据键获取配置项
func (s *SettingService) Get(key string) (*models.Setting, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrNotFound
	}
	return setting, nil
}

// GetValue 根据键取值，不存在时返回默认值
func (s *SettingService) GetValue(key, fallback string) (string, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return fallback, nil
	}
	return setting.Value, nil
}

// Upsert 写入配置项，键存在则覆盖
func (s *SettingService) Upsert(key, value, description string) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Upsert(key, value, description)
}

// UpsertMany 批量写入配置项
func (s *SettingService) UpsertMany(entries map[string]string) error {
	for key, value := range entries {
		if strings.TrimSpace(key) == "" {
			return ErrInvalidInput
		}
		if _, err := s.repo.Upsert(key, value, ""); err != nil {
			return err
		}
	}
	return nil
}

// Delete 删除配置项
func (s *SettingService) Delete(key string) error {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return err
	}
	if setting == nil {
		return ErrNotFound
	}
	return s.repo.Delete(key)
}

// PublicConfig 前台公开配置，仅返回白名单键
func (s *SettingService) PublicConfig() (map[string]string, error) {
	settings, err := s.repo.GetManyByKeys(publicSettingKeys)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.KeyName] = setting.Value
	}
	return result, nil
}
