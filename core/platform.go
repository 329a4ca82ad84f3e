package core

import (
	"fmt"
	"strings"
)

// Platform identifies a social network an agent can publish to.
//
// The enumeration is closed: extending it requires a new constant here plus
// an adapter implementation registered with the runtime. Lookup of adapters
// is by platform value only.
type Platform string

const (
	// PlatformTwitter targets Twitter/X.
	PlatformTwitter Platform = "twitter"
	// PlatformTelegram targets Telegram channels.
	PlatformTelegram Platform = "telegram"
	// PlatformDiscord targets Discord servers.
	PlatformDiscord Platform = "discord"
)

// AllPlatforms returns every known platform value in declaration order.
func AllPlatforms() []Platform {
	return []Platform{PlatformTwitter, PlatformTelegram, PlatformDiscord}
}

// Valid reports whether p is a member of the closed enumeration.
func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitter, PlatformTelegram, PlatformDiscord:
		return true
	}
	return false
}

// String returns the canonical lowercase name.
func (p Platform) String() string { return string(p) }

// ParsePlatform converts a case-insensitive name into a Platform value.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}
