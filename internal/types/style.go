package types

// Header styles supported by the templates.
const (
	HeaderStandard = "standard"
	HeaderCentered = "centered"
	HeaderSplit    = "split"
)

// Section container styles. Only SectionBoxed draws a container around list items.
const (
	SectionBoxed      = "boxed"
	SectionPlain      = "plain"
	SectionUnderlined = "underlined"
)

// StyleConfiguration holds the user-chosen visual parameters, independent of content.
// Numeric fields are clamped by the customization engine; the validate tags cover the
// syntactic shape only.
type StyleConfiguration struct {
	Colors     ColorSettings      `json:"colors"`
	Typography TypographySettings `json:"typography"`
	Spacing    SpacingSettings    `json:"spacing"`
	Layout     LayoutSettings     `json:"layout"`
}

// ColorSettings are hex color strings (#rgb or #rrggbb).
type ColorSettings struct {
	Primary   string `json:"primary" validate:"required,hexcolor"`
	Secondary string `json:"secondary" validate:"required,hexcolor"`
	Text      string `json:"text" validate:"required,hexcolor"`
	Accent    string `json:"accent" validate:"required,hexcolor"`
}

// TypographySettings control fonts and sizes (px).
type TypographySettings struct {
	HeadingFont string  `json:"headingFont" validate:"required"`
	BodyFont    string  `json:"bodyFont" validate:"required"`
	HeadingSize int     `json:"headingSize"`
	BodySize    int     `json:"bodySize"`
	LineHeight  float64 `json:"lineHeight"`
}

// SpacingSettings are pixel-equivalent units.
type SpacingSettings struct {
	SectionSpacing int `json:"sectionSpacing"`
	ItemSpacing    int `json:"itemSpacing"`
	Padding        int `json:"padding"`
}

// LayoutSettings choose the layout family.
type LayoutSettings struct {
	Columns      int    `json:"columns"`
	HeaderStyle  string `json:"headerStyle" validate:"required,oneof=standard centered split"`
	SectionStyle string `json:"sectionStyle" validate:"required,oneof=boxed plain underlined"`
}

// DefaultStyleConfiguration returns the documented default instance used whenever no
// customization has been saved yet.
func DefaultStyleConfiguration() StyleConfiguration {
	return StyleConfiguration{
		Colors: ColorSettings{
			Primary:   "#0369a1",
			Secondary: "#f4f4f5",
			Text:      "#18181b",
			Accent:    "#0284c7",
		},
		Typography: TypographySettings{
			HeadingFont: "Inter",
			BodyFont:    "Inter",
			HeadingSize: 18,
			BodySize:    14,
			LineHeight:  1.5,
		},
		Spacing: SpacingSettings{
			SectionSpacing: 24,
			ItemSpacing:    16,
			Padding:        32,
		},
		Layout: LayoutSettings{
			Columns:      1,
			HeaderStyle:  HeaderStandard,
			SectionStyle: SectionBoxed,
		},
	}
}

// TemplateDescriptor is a read-only catalog entry.
type TemplateDescriptor struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	ThumbnailRef string `json:"thumbnailRef" yaml:"thumbnail"`
	Description  string `json:"description" yaml:"description"`
	Category     string `json:"category" yaml:"category"`
	IsPremium    bool   `json:"isPremium" yaml:"premium"`
	Columns      []int  `json:"columns" yaml:"columns"`
}

// SupportsColumns reports whether the template can lay content out in n columns.
func (t TemplateDescriptor) SupportsColumns(n int) bool {
	for _, c := range t.Columns {
		if c == n {
			return true
		}
	}
	return false
}

// TextStyle is the computed presentation of a text slot.
type TextStyle struct {
	Color        string  `json:"color"`
	Background   string  `json:"background,omitempty"`
	FontFamily   string  `json:"fontFamily"`
	FontSize     int     `json:"fontSize"`
	LineHeight   float64 `json:"lineHeight"`
	Padding      int     `json:"padding"`
	MarginBottom int     `json:"marginBottom"`
}

// ContainerStyle is the computed treatment of a list item container.
type ContainerStyle struct {
	Bordered     bool   `json:"bordered"`
	BorderWidth  int    `json:"borderWidth"`
	BorderColor  string `json:"borderColor,omitempty"`
	BorderRadius int    `json:"borderRadius"`
	Padding      int    `json:"padding"`
	MarginBottom int    `json:"marginBottom"`
}

// ResolvedStyle is the fully computed, bounded presentation derived from a
// StyleConfiguration for one template. It holds no reference to its inputs.
type ResolvedStyle struct {
	TemplateID   string `json:"templateId"`
	Columns      int    `json:"columns"`
	HeaderStyle  string `json:"headerStyle"`
	SectionStyle string `json:"sectionStyle"`

	Page    TextStyle      `json:"page"`
	Banner  TextStyle      `json:"banner"`
	Heading TextStyle      `json:"heading"`
	Body    TextStyle      `json:"body"`
	Accent  TextStyle      `json:"accent"`
	Section ContainerStyle `json:"section"`
	Item    ContainerStyle `json:"item"`
}
