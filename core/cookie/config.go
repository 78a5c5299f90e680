package cookie

// Config provides environment-based configuration for cookie encoding.
type Config struct {
	// Base64 wraps typed cookie JSON in URL-safe base64.
	Base64 bool `env:"COOKIE_BASE64" envDefault:"true"`
	// MaxSize limits the serialized Set-Cookie line written by the request-time backend.
	MaxSize int `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
}

// DefaultConfig returns a Config with transport-safe defaults.
func DefaultConfig() Config {
	return Config{
		Base64:  true,
		MaxSize: MaxCookieSize,
	}
}

// CodecOptions returns the codec options described by the config.
func (c Config) CodecOptions() CodecOptions {
	return CodecOptions{Base64: c.Base64}
}

// DefaultCodecOptions returns the codec options of DefaultConfig.
func DefaultCodecOptions() CodecOptions {
	return DefaultConfig().CodecOptions()
}
