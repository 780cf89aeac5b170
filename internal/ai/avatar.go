package ai

import "context"

// ImageGenerator is the contract with the hosted image model: prompt in,
// URLs out.
type ImageGenerator interface {
	GenerateImages(ctx context.Context, prompt string, imageCount int) ([]string, error)
}

type AvatarChain struct {
	Images ImageGenerator
}

// AvatarSubject carries the optional product the avatar should wear.
type AvatarSubject struct {
	ProductName     string
	ProductCategory string
}

// BuildPrompt composes the image-generation prompt from preset parameters,
// the optional product, and per-request style settings.
func (c *AvatarChain) BuildPrompt(subject *AvatarSubject, presetParams, styleParams map[string]string) string {
	prompt := "Fashion avatar with preset " + formatParams(presetParams)
	if subject != nil && subject.ProductName != "" {
		prompt += ", wearing product '" + subject.ProductName + "'"
		if subject.ProductCategory != "" {
			prompt += " in category " + subject.ProductCategory
		}
	}
	if len(styleParams) > 0 {
		prompt += ", with style settings " + formatParams(styleParams)
	}
	return prompt
}

func (c *AvatarChain) Generate(ctx context.Context, subject *AvatarSubject, presetParams, styleParams map[string]string, imageCount int) ([]string, error) {
	prompt := c.BuildPrompt(subject, presetParams, styleParams)
	return c.Images.GenerateImages(ctx, prompt, imageCount)
}
