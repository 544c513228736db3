package secondfactor

import (
	"github.com/FluidWallet/fluid/codec"
	"github.com/FluidWallet/fluid/storage"
)

const MOD_NAME = "secondfactor"

type Kind string

const (
	Kind_None  Kind = "none"
	Kind_Email Kind = "email"
	Kind_TOTP  Kind = "totp"
)

// Config lives in storage independently of the vault and is read-only
// from the vault's perspective. It is consulted after password
// verification and before a session is created.
type Config struct {
	Kind       Kind   `json:"kind"`
	Email      string `json:"email,omitempty"`
	TOTPSecret string `json:"totpSecret,omitempty"`
}

// Verifier is the one capability the session state machine needs from
// any second factor; the machine stays factor-agnostic.
//
// Verification is safe to retry without limit. There is deliberately no
// rate limiting or lockout here: that gap is inherited behavior, kept
// visible rather than silently papered over.
type Verifier interface {
	Verify(code string) bool
}

// CreateVerifier binds cfg to a concrete verifier. Returns nil when no
// second factor is configured.
func CreateVerifier(cfg Config, emailIssuer *EmailIssuer) Verifier {
	switch cfg.Kind {
	case Kind_Email:
		return emailIssuer.Challenge(cfg.Email)
	case Kind_TOTP:
		return NewTOTPVerifier(cfg.TOTPSecret)
	}
	return nil
}

func LoadConfig(store storage.Store, marshaler codec.Marshaler) (Config, error) {
	data, err := store.Get(storage.KeySecondFactorConfig)
	if err == storage.ErrKeyNotFound {
		return Config{Kind: Kind_None}, nil
	} else if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err = marshaler.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Kind == "" {
		cfg.Kind = Kind_None
	}
	return cfg, nil
}

func SaveConfig(store storage.Store, marshaler codec.Marshaler, cfg Config) error {
	data, err := marshaler.Marshal(cfg)
	if err != nil {
		return err
	}
	return store.Set(storage.KeySecondFactorConfig, data)
}
