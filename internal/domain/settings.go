package domain

// SettingsProfile is the admin profile block of the settings singleton.
type SettingsProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SettingsSite is the public-site block of the settings singleton.
type SettingsSite struct {
	SiteName         string            `json:"siteName"`
	SiteURL          string            `json:"siteUrl"`
	ContactEmail     string            `json:"contactEmail"`
	ContactPhone     string            `json:"contactPhone"`
	ContactAddress   string            `json:"contactAddress"`
	ContactHours     string            `json:"contactHours"`
	SocialLinks      map[string]string `json:"socialLinks"`
	FooterBookmakers []string          `json:"footerBookmakers"`
}

// SettingsNotifications is the notification-preference block.
type SettingsNotifications struct {
	EmailAlerts  bool `json:"emailAlerts"`
	NewUsers     bool `json:"newUsers"`
	Conversions  bool `json:"conversions"`
	WeeklyReport bool `json:"weeklyReport"`
}

// Settings is the singleton site configuration aggregate.
type Settings struct {
	ID            string                `json:"id"`
	Profile       SettingsProfile       `json:"profile"`
	Site          SettingsSite          `json:"site"`
	Notifications SettingsNotifications `json:"notifications"`
}

// SettingsPatch is a partial settings update; nil blocks are left untouched.
type SettingsPatch struct {
	Profile       *SettingsProfile       `json:"profile,omitempty"`
	Site          *SettingsSite          `json:"site,omitempty"`
	Notifications *SettingsNotifications `json:"notifications,omitempty"`
}

// DefaultSettings returns the values used when the singleton is created lazily.
func DefaultSettings() Settings {
	return Settings{
		Profile: SettingsProfile{
			Name:  "Administrateur",
			Email: "admin@betpromo.com",
			Phone: "+33 1 23 45 67 89",
		},
		Site: SettingsSite{
			SiteName:     "BetPromo",
			SiteURL:      "https://betpromo.com",
			ContactEmail: "contact@betpromo.com",
			ContactHours: "Lun-Ven 9h-18h",
			SocialLinks:  map[string]string{},
		},
		Notifications: SettingsNotifications{
			EmailAlerts: true,
			NewUsers:    true,
			Conversions: true,
		},
	}
}
