package branding

// Default returns the built-in registry used when no registry file is
// configured.
func Default() *Registry {
	doorstep := AgencyBranding{
		ID:   "doorstep",
		Name: "Doorstep",
		Tone: "conversational",
		Colors: ColorPalette{
			Primary:    "#1E4D8C",
			Secondary:  "#F4F6F8",
			Accent:     "#E8A33D",
			Text:       "#1A1A2E",
			Background: "#FFFFFF",
		},
		DefaultTemplate: TemplateContemporary,
		Templates: map[TemplateType]TemplateConfig{
			TemplateContemporary: {
				Name:       "Contemporary",
				Layout:     "full_bleed",
				FontFamily: "Inter",
			},
			TemplateStandard: {
				Name:       "Standard",
				Layout:     "two_column",
				FontFamily: "Inter",
			},
			TemplatePremium: {
				Name:       "Premium",
				Layout:     "magazine",
				FontFamily: "Playfair Display",
			},
		},
	}

	savills := AgencyBranding{
		ID:   "savills",
		Name: "Savills",
		Tone: "premium",
		Colors: ColorPalette{
			Primary:    "#001E42",
			Secondary:  "#F5F2EC",
			Accent:     "#B79E64",
			Text:       "#14213D",
			Background: "#FFFFFF",
		},
		DefaultTemplate: TemplatePremium,
		Templates: map[TemplateType]TemplateConfig{
			TemplatePremium: {
				Name:       "Premium",
				Layout:     "magazine",
				FontFamily: "Garamond",
			},
			TemplateClassic: {
				Name:       "Classic",
				Layout:     "two_column",
				FontFamily: "Garamond",
			},
			TemplateCountry: {
				Name:       "Country",
				Layout:     "landscape",
				FontFamily: "Garamond",
			},
		},
	}

	return &Registry{agencies: map[string]AgencyBranding{
		doorstep.ID: doorstep,
		savills.ID:  savills,
	}}
}
