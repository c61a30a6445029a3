package models

// Icon and color names are validated identifiers, not free-form strings, so
// the document stays decoupled from whatever renders it. Unknown values fall
// back to the defaults below during normalization.

const (
	DefaultIcon  = "Tag"
	DefaultColor = "bg-pastel-cyan"
)

var validIcons = map[string]struct{}{
	"Moon": {}, "Briefcase": {}, "Film": {}, "Users": {}, "Plane": {},
	"Utensils": {}, "Car": {}, "ShoppingBag": {}, "Receipt": {},
	"HeartPulse": {}, "Tag": {}, "Book": {}, "Flag": {}, "Star": {},
	"Music": {}, "Dumbbell": {}, "Coffee": {}, "Gamepad": {}, "Home": {},
	"Heart": {}, "Camera": {}, "Gift": {},
}

var validColors = map[string]struct{}{
	"bg-pastel-purple": {}, "bg-pastel-blue": {}, "bg-pastel-yellow": {},
	"bg-pastel-pink": {}, "bg-pastel-mint": {}, "bg-pastel-green": {},
	"bg-pastel-rose": {}, "bg-pastel-cyan": {},
}

// ValidIcon reports whether name belongs to the supported icon set.
func ValidIcon(name string) bool {
	_, ok := validIcons[name]
	return ok
}

// ValidColor reports whether name belongs to the supported color set.
func ValidColor(name string) bool {
	_, ok := validColors[name]
	return ok
}

// NormalizeIcon returns name if valid, otherwise the fallback icon.
func NormalizeIcon(name string) string {
	if ValidIcon(name) {
		return name
	}
	return DefaultIcon
}

// NormalizeColor returns name if valid, otherwise the fallback color.
func NormalizeColor(name string) string {
	if ValidColor(name) {
		return name
	}
	return DefaultColor
}
