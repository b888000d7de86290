package assistant

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
)

const latexSystemPrompt = "You transcribe images of mathematics into LaTeX."

const latexPrompt = `Transcribe the content in this image into LaTeX code.
If there are multiple equations or elements, provide them in a clear and organized LaTeX structure.
Focus on accuracy and proper LaTeX syntax for mathematical expressions.
Return only the LaTeX code without any explanations, headers, or extra text.`

// ErrNoImage is returned for an empty image payload.
var ErrNoImage = errors.New("assistant: empty image")

// TranscribeLatex converts a PNG screenshot into LaTeX source.
func (c *Client) TranscribeLatex(ctx context.Context, png []byte) (string, error) {
	if len(png) == 0 {
		return "", ErrNoImage
	}

	reply, err := c.complete(ctx, "transcribe", latexSystemPrompt,
		anthropic.NewImageBlockBase64("image/png", base64.StdEncoding.EncodeToString(png)),
		anthropic.NewTextBlock(latexPrompt),
	)
	if err != nil {
		return "", err
	}

	return stripFences(reply), nil
}
