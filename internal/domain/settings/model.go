package settings

// Setting keys. Only these keys may be written through the admin API.
const (
	KeyChurchName        = "church_name"
	KeyLogoURL           = "logo_url"
	KeySimpleCheckinMode = "simple_checkin_mode"
	KeyWelcomeMessage    = "welcome_message"
)

// Defaults applied when a key has never been written.
const (
	DefaultChurchName = "성당"
)

var allowedKeys = map[string]bool{
	KeyChurchName:        true,
	KeyLogoURL:           true,
	KeySimpleCheckinMode: true,
	KeyWelcomeMessage:    true,
}

// AllowedKey reports whether the admin API may write the given key.
func AllowedKey(key string) bool {
	return allowedKeys[key]
}

// Settings is the process-wide key/value view, refreshed on demand after an
// admin write.
type Settings map[string]string

// ChurchName returns the configured church name or the default.
func (s Settings) ChurchName() string {
	if v := s[KeyChurchName]; v != "" {
		return v
	}
	return DefaultChurchName
}

// LogoURL returns the uploaded logo URL, empty when unset.
func (s Settings) LogoURL() string {
	return s[KeyLogoURL]
}

// WelcomeMessage returns the raw markdown welcome message, empty when unset.
func (s Settings) WelcomeMessage() string {
	return s[KeyWelcomeMessage]
}

// SimpleCheckinMode reports whether selection alone completes a check-in.
// Anything other than the literal "true" is off.
func (s Settings) SimpleCheckinMode() bool {
	return s[KeySimpleCheckinMode] == "true"
}
