package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flokiorg/tickethub/db"
	"github.com/flokiorg/tickethub/logger"
	"github.com/flokiorg/tickethub/utils"
)

type config struct {
	Env        *AppConfig
	db         *gorm.DB
	cache      map[string]string
	cacheMutex sync.Mutex
}

func NewConfig(env *AppConfig, db *gorm.DB) (*config, error) {
	cfg := &config{
		db:    db,
		cache: map[string]string{},
	}
	err := cfg.init(env)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// init seeds settings from the environment. Explicit env values win over
// stored ones; the wallet address is only seeded once.
func (cfg *config) init(env *AppConfig) error {
	cfg.Env = env

	if err := utils.ValidateHTTPURL(env.RelayEndpoint); err != nil {
		return fmt.Errorf("invalid relay endpoint: %w", err)
	}
	if err := utils.ValidateLinkPrefix(env.LinkPrefix); err != nil {
		return fmt.Errorf("invalid link prefix: %w", err)
	}

	if cfg.Env.WalletAddress != "" {
		if !common.IsHexAddress(cfg.Env.WalletAddress) {
			return fmt.Errorf("invalid wallet address %q", cfg.Env.WalletAddress)
		}
		err := cfg.SetIgnore(WalletAddressKey, common.HexToAddress(cfg.Env.WalletAddress).Hex())
		if err != nil {
			return err
		}
	}
	if cfg.Env.RatesURL != "" {
		err := cfg.SetRatesURL(cfg.Env.RatesURL)
		if err != nil {
			return err
		}
	}

	return nil
}

func (cfg *config) GetEnv() *AppConfig {
	return cfg.Env
}

func (cfg *config) Get(key string) (string, error) {
	cfg.cacheMutex.Lock()
	defer cfg.cacheMutex.Unlock()

	if value, ok := cfg.cache[key]; ok {
		return value, nil
	}

	var userConfig db.UserConfig
	result := cfg.db.Where(&db.UserConfig{Key: key}).Limit(1).Find(&userConfig)
	if result.Error != nil {
		logger.Logger.Error().Err(result.Error).Str("key", key).Msg("Failed to read user config")
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", nil
	}

	cfg.cache[key] = userConfig.Value
	return userConfig.Value, nil
}

// SetIgnore stores value only if the key has no value yet.
func (cfg *config) SetIgnore(key string, value string) error {
	cfg.cacheMutex.Lock()
	defer cfg.cacheMutex.Unlock()
	delete(cfg.cache, key)

	userConfig := db.UserConfig{Key: key, Value: value}
	result := cfg.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&userConfig)

	if result.Error != nil {
		logger.Logger.Error().Err(result.Error).Str("key", key).Msg("Failed to save user config")
		return result.Error
	}
	return nil
}

// SetUpdate stores value, replacing any existing one.
func (cfg *config) SetUpdate(key string, value string) error {
	cfg.cacheMutex.Lock()
	defer cfg.cacheMutex.Unlock()
	delete(cfg.cache, key)

	userConfig := db.UserConfig{Key: key, Value: value}
	result := cfg.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&userConfig)

	if result.Error != nil {
		logger.Logger.Error().Err(result.Error).Str("key", key).Msg("Failed to update user config")
		return result.Error
	}
	return nil
}

func (cfg *config) getOrDefault(key string, fallback string) string {
	value, err := cfg.Get(key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

func (cfg *config) GetLinkPrefix() string {
	return cfg.Env.LinkPrefix
}

func (cfg *config) GetRelayEndpoint() string {
	return cfg.getOrDefault(RelayEndpointKey, cfg.Env.RelayEndpoint)
}

func (cfg *config) SetRelayEndpoint(value string) error {
	if err := ValidateRelayEndpoint(value); err != nil {
		return err
	}
	return cfg.SetUpdate(RelayEndpointKey, value)
}

func (cfg *config) GetRelayTimeout() time.Duration {
	return cfg.Env.RelayTimeout
}

func (cfg *config) GetRelayEncoding() string {
	return strings.ToLower(cfg.Env.RelayEncoding)
}

func (cfg *config) GetWalletAddress() string {
	return cfg.getOrDefault(WalletAddressKey, "")
}

func (cfg *config) SetWalletAddress(value string) error {
	if err := ValidateWalletAddress(value); err != nil {
		return err
	}
	return cfg.SetUpdate(WalletAddressKey, common.HexToAddress(value).Hex())
}

func (cfg *config) GetRatesURL() string {
	return cfg.getOrDefault(RatesURLKey, cfg.Env.RatesURL)
}

func (cfg *config) SetRatesURL(value string) error {
	if err := ValidateRatesURL(value); err != nil {
		return err
	}
	return cfg.SetUpdate(RatesURLKey, value)
}

func (cfg *config) GetCurrency() string {
	return cfg.getOrDefault(CurrencyKey, cfg.Env.Currency)
}

func (cfg *config) SetCurrency(value string) error {
	if err := ValidateCurrency(value); err != nil {
		return err
	}
	return cfg.SetUpdate(CurrencyKey, strings.ToUpper(value))
}

func (cfg *config) GetTokenName() string {
	return cfg.Env.TokenName
}

func (cfg *config) GetTokenSymbol() string {
	return cfg.Env.TokenSymbol
}

func (cfg *config) GetJWTSecret() string {
	return cfg.Env.JWTSecret
}

// DefaultWorkDir is used when WORK_DIR is not set.
func DefaultWorkDir() string {
	return filepath.Join(xdg.DataHome, "tickethub")
}

func ValidateRelayEndpoint(value string) error {
	return utils.ValidateHTTPURL(value)
}

func ValidateWalletAddress(value string) error {
	if !common.IsHexAddress(value) {
		return errors.New("invalid wallet address")
	}
	return nil
}

// ValidateRatesURL accepts an empty value, which disables fiat estimates.
func ValidateRatesURL(value string) error {
	if value == "" {
		return nil
	}
	return utils.ValidateHTTPURL(value)
}

func ValidateCurrency(value string) error {
	if len(value) != 3 {
		return fmt.Errorf("invalid currency code %q", value)
	}
	return nil
}
