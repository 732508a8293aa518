package sections

import "strings"

// Icon names one of the fixed pictograms the frontend ships.
type Icon string

const (
	IconSun     Icon = "sun"
	IconWind    Icon = "wind"
	IconBattery Icon = "battery"
	IconHome    Icon = "home"
	IconUsers   Icon = "users"
	IconLeaf    Icon = "leaf"
	IconBolt    Icon = "bolt"
	IconChart   Icon = "chart"
)

// Icons lists every icon in declaration order.
func Icons() []Icon {
	return []Icon{IconSun, IconWind, IconBattery, IconHome, IconUsers, IconLeaf, IconBolt, IconChart}
}

// ParseIcon maps raw onto the closed set; unknown names return fallback,
// or IconLeaf when fallback is itself unknown.
func ParseIcon(raw string, fallback Icon) Icon {
	if icon, ok := matchTag(raw, Icons()); ok {
		return icon
	}
	if _, ok := matchTag(string(fallback), Icons()); ok {
		return fallback
	}
	return IconLeaf
}

// ImpactKind selects how an impact item renders.
type ImpactKind string

const (
	ImpactStat ImpactKind = "stat"
	ImpactText ImpactKind = "text"
)

// ParseImpactKind maps raw onto {stat, text}.
func ParseImpactKind(raw string, fallback ImpactKind) ImpactKind {
	kinds := []ImpactKind{ImpactStat, ImpactText}
	if kind, ok := matchTag(raw, kinds); ok {
		return kind
	}
	if _, ok := matchTag(string(fallback), kinds); ok {
		return fallback
	}
	return ImpactStat
}

// ProjectStatus tracks where a pilot project stands.
type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "planned"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// ParseProjectStatus maps raw onto the project statuses.
func ParseProjectStatus(raw string, fallback ProjectStatus) ProjectStatus {
	statuses := []ProjectStatus{ProjectPlanned, ProjectActive, ProjectCompleted}
	if status, ok := matchTag(raw, statuses); ok {
		return status
	}
	if _, ok := matchTag(string(fallback), statuses); ok {
		return fallback
	}
	return ProjectPlanned
}

// SocialPlatform names a footer social network.
type SocialPlatform string

const (
	SocialFacebook  SocialPlatform = "facebook"
	SocialInstagram SocialPlatform = "instagram"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialX         SocialPlatform = "x"
	SocialYouTube   SocialPlatform = "youtube"
)

// ParseSocialPlatform maps raw onto the supported platforms. "twitter" is
// accepted as an alias for x.
func ParseSocialPlatform(raw string, fallback SocialPlatform) SocialPlatform {
	platforms := []SocialPlatform{SocialFacebook, SocialInstagram, SocialLinkedIn, SocialX, SocialYouTube}
	if strings.EqualFold(strings.TrimSpace(raw), "twitter") {
		return SocialX
	}
	if platform, ok := matchTag(raw, platforms); ok {
		return platform
	}
	if _, ok := matchTag(string(fallback), platforms); ok {
		return fallback
	}
	return SocialFacebook
}

func matchTag[T ~string](raw string, set []T) (T, bool) {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	for _, tag := range set {
		if string(tag) == candidate {
			return tag, true
		}
	}
	var zero T
	return zero, false
}
