package config

// Default clinic working day. A slot is offered only if it starts and ends
// inside these hours.
const (
	DefaultBusinessStartHour = 9
	DefaultBusinessEndHour   = 18
	DefaultSlotMinutes       = 60
)

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string

	BusinessStartHour int
	BusinessEndHour   int
	SlotMinutes       int
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
