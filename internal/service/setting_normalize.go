package service

import (
	"strings"

	"github.com/studio360-next/internal/constants"
	"github.com/studio360-next/internal/models"

	"github.com/shopspring/decimal"
)

const (
	settingShopNameMaxRuneSize = 120
	settingShopTextMaxRuneSize = 500
)

// normalizeSettingValueByKey 按设置键执行归一化，避免非法值入库。
func normalizeSettingValueByKey(key string, value map[string]interface{}) models.JSON {
	switch {
	case key == constants.SettingKeyShopProfile:
		return normalizeShopProfileSetting(value)
	// 免运费配置按卖家落键（shipping_config:<sellerID>），前缀匹配
	case strings.HasPrefix(key, constants.SettingKeyShippingConfig):
		return normalizeShippingSetting(value)
	default:
		return models.JSON(value)
	}
}

// normalizeShopProfileSetting 归一化店铺资料。
func normalizeShopProfileSetting(value map[string]interface{}) models.JSON {
	normalized := make(models.JSON, len(value))
	for key, raw := range value {
		normalized[key] = raw
	}

	normalized[constants.SettingFieldShopName] = normalizeSettingTextWithRuneLimit(value[constants.SettingFieldShopName], settingShopNameMaxRuneSize)
	normalized[constants.SettingFieldContactEmail] = normalizeSettingText(value[constants.SettingFieldContactEmail])
	normalized[constants.SettingFieldContactPhone] = normalizeSettingText(value[constants.SettingFieldContactPhone])
	normalized[constants.SettingFieldShopCategory] = normalizeSettingText(value[constants.SettingFieldShopCategory])
	normalized[constants.SettingFieldStreetAddress] = normalizeSettingTextWithRuneLimit(value[constants.SettingFieldStreetAddress], settingShopTextMaxRuneSize)

	return normalized
}

// normalizeShippingSetting 归一化免运费配置。
func normalizeShippingSetting(value map[string]interface{}) models.JSON {
	normalized := make(models.JSON, len(value)+2)
	for key, raw := range value {
		normalized[key] = raw
	}

	normalized[constants.SettingFieldFreeShipping] = parseSettingBool(value[constants.SettingFieldFreeShipping])

	minAmount := decimal.Zero
	switch raw := value[constants.SettingFieldFreeShipMin].(type) {
	case float64:
		minAmount = decimal.NewFromFloat(raw)
	case string:
		if parsed, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
			minAmount = parsed
		}
	}
	if minAmount.IsNegative() {
		minAmount = decimal.Zero
	}
	normalized[constants.SettingFieldFreeShipMin] = minAmount.Round(2).StringFixed(2)

	return normalized
}

// normalizeSettingText 提取可入库的文本值。
func normalizeSettingText(raw interface{}) string {
	if text, ok := raw.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func normalizeSettingTextWithRuneLimit(raw interface{}, maxRuneCount int) string {
	text := normalizeSettingText(raw)
	if maxRuneCount <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRuneCount {
		return text
	}
	return strings.TrimSpace(string(runes[:maxRuneCount]))
}

// parseSettingBool 宽松解析布尔配置值。
func parseSettingBool(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			return true
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}
