package render

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// TextStyle captures the font settings used for one kind of resume text.
type TextStyle struct {
	Size   float64
	Bold   bool
	Italic bool
	Color  RGB
}

func (s TextStyle) fontStyle() string {
	switch {
	case s.Bold && s.Italic:
		return "BI"
	case s.Bold:
		return "B"
	case s.Italic:
		return "I"
	default:
		return ""
	}
}

// Page geometry in millimetres.
const (
	FontFamily       = "Helvetica"
	Margin           = 25.0
	FooterOffset     = 10.0
	BulletIndent     = 5.0
	HeadingLineStep  = 6.0
	LineHeightFactor = 0.35
)

var (
	PrimaryColor   = RGB{41, 128, 185}
	SecondaryColor = RGB{52, 73, 94}
	RuleColor      = RGB{200, 200, 200}
)

// Style keys.
const (
	StyleName           = "name"
	StyleContact        = "contact"
	StyleSectionHeading = "sectionHeading"
	StyleBody           = "body"
	StyleEntryTitle     = "entryTitle"
	StyleDuration       = "duration"
	StyleFooter         = "footer"
)

// StyleMap centralizes the formatting for key resume elements.
var StyleMap = map[string]TextStyle{
	StyleName: {
		Size:  28,
		Bold:  true,
		Color: PrimaryColor,
	},
	StyleContact: {
		Size:  10,
		Color: RGB{100, 100, 100},
	},
	StyleSectionHeading: {
		Size:  16,
		Bold:  true,
		Color: PrimaryColor,
	},
	StyleBody: {
		Size:  11,
		Color: SecondaryColor,
	},
	StyleEntryTitle: {
		Size:  12,
		Bold:  true,
		Color: SecondaryColor,
	},
	StyleDuration: {
		Size:   10,
		Italic: true,
		Color:  RGB{120, 120, 120},
	},
	StyleFooter: {
		Size:  8,
		Color: RGB{150, 150, 150},
	},
}

// LineHeight converts a point size to the line advance in millimetres.
func LineHeight(size float64) float64 {
	return size * LineHeightFactor
}
