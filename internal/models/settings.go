package models

// SettingsID is the primary key of the single settings row.
const SettingsID = "settings"

// Settings is the restaurant-wide configuration singleton.
type Settings struct {
	ID             string  `json:"id" db:"id"`
	RestaurantName string  `json:"restaurantName" db:"restaurant_name"`
	Currency       string  `json:"currency" db:"currency"`
	TaxRate        float64 `json:"taxRate" db:"tax_rate"`
	ServiceFee     float64 `json:"serviceFee" db:"service_fee"`
	OpenHours      string  `json:"openHours" db:"open_hours"`
	LogoURL        string  `json:"logoUrl" db:"logo_url"`
	BannerText     string  `json:"bannerText" db:"banner_text"`
}

// SettingsUpdate carries a partial settings change; nil fields are left
// untouched.
type SettingsUpdate struct {
	RestaurantName *string  `json:"restaurantName"`
	Currency       *string  `json:"currency"`
	TaxRate        *float64 `json:"taxRate"`
	ServiceFee     *float64 `json:"serviceFee"`
	OpenHours      *string  `json:"openHours"`
	LogoURL        *string  `json:"logoUrl"`
	BannerText     *string  `json:"bannerText"`
}

// DefaultSettings returns the values served before any settings row exists.
func DefaultSettings() *Settings {
	return &Settings{
		ID:             SettingsID,
		RestaurantName: "Café Delight",
		Currency:       "$",
		TaxRate:        0.08,
		ServiceFee:     0,
		OpenHours:      "8:00 AM - 10:00 PM",
		BannerText:     "Welcome! Scan QR to order",
	}
}
