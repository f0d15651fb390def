package model

type HeroAnimation string

const (
	HeroAnimationFloat  HeroAnimation = "float"
	HeroAnimationRotate HeroAnimation = "rotate"
	HeroAnimationScale  HeroAnimation = "scale"
	HeroAnimationSlide  HeroAnimation = "slide"
)

const (
	HeroImageCount     = 4
	CategoryImageCount = 6

	// MaxBackgroundImageBytes caps the decoded size of an uploaded background image.
	MaxBackgroundImageBytes = 5 * 1024 * 1024
)

type HeroImage struct {
	Title string `json:"title" validate:"max=100"`
	URL   string `json:"url"   validate:"omitempty,image"`
}

type CategoryImage struct {
	Name string `json:"name" validate:"required,max=100"`
	URL  string `json:"url"  validate:"omitempty,image"`
}

type SiteSettings struct {
	HeroAnimation         HeroAnimation   `json:"heroAnimation"         validate:"required,oneof=float rotate scale slide"`
	HeroBackgroundOpacity float64         `json:"heroBackgroundOpacity" validate:"gte=0,lte=1"`
	HeroOverlayOpacity    float64         `json:"heroOverlayOpacity"    validate:"gte=0,lte=1"`
	HeroOverlayColor      string          `json:"heroOverlayColor"      validate:"required,hexcolor"`
	CustomBackgroundImage string          `json:"customBackgroundImage,omitempty" validate:"omitempty,image"`
	HeroImages            []HeroImage     `json:"heroImages"            validate:"len=4,dive"`
	CategoryImages        []CategoryImage `json:"categoryImages"        validate:"len=6,dive"`
}

// DefaultSiteSettings returns the settings used before an administrator saves any.
func DefaultSiteSettings() SiteSettings {
	categoryImages := make([]CategoryImage, 0, len(Categories))
	for _, c := range Categories {
		categoryImages = append(categoryImages, CategoryImage{Name: string(c)})
	}
	return SiteSettings{
		HeroAnimation:         HeroAnimationFloat,
		HeroBackgroundOpacity: 0.5,
		HeroOverlayOpacity:    0.3,
		HeroOverlayColor:      "#000000",
		HeroImages: []HeroImage{
			{Title: "Bridal Collection"},
			{Title: "Pure Silk"},
			{Title: "Designer Wear"},
			{Title: "Festival Special"},
		},
		CategoryImages: categoryImages,
	}
}
