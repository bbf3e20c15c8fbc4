package main

import (
	"fmt"
	"time"
)

type Config struct {
	Port              int           `env:"PORT,default=4000"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	MediaRoot         string        `env:"MEDIA_ROOT,required=true"`
	MediaBaseURL      string        `env:"MEDIA_BASE_URL,default=/uploads"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=168h"`
	TypingTTL         time.Duration `env:"TYPING_TTL,default=2s"`
	CensoredWordsFile string        `env:"CENSORED_WORDS_FILE"`
	CensorMask        string        `env:"CENSOR_MASK,default=*"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
}

func (c Config) MaskRune() (rune, error) {
	r := []rune(c.CensorMask)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_MASK must be a single character, got %q",
			c.CensorMask,
		)
	}
	return r[0], nil
}
