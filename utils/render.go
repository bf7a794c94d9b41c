package utils

import (
	"fmt"

	"github.com/aymerick/raymond"

	"alloc8-join/models"
)

// Double-stash expressions are HTML-escaped by raymond (&, <, >, quotes).
var joinHTMLTemplate = raymond.MustParse(`
<p><strong>Email:</strong> {{emailAddress}}</p>
{{#if name}}<p><strong>Name:</strong> {{name}}</p>
{{/if}}<p><strong>What features would matter most?</strong></p>
<p>{{featuresMatterMost}}</p>
<p><strong>Current placement system:</strong></p>
<p>{{currentPlacementSystem}}</p>
<p><strong>Main challenges with the current system:</strong></p>
<p>{{mainChallenges}}</p>
`)

// Plain text part; triple-stash so nothing is entity-encoded.
var joinTextTemplate = raymond.MustParse(`Email: {{{emailAddress}}}
{{#if name}}Name: {{{name}}}
{{/if}}
What features would matter most?
{{{featuresMatterMost}}}

Current placement system:
{{{currentPlacementSystem}}}

Main challenges with the current system:
{{{mainChallenges}}}
`)

// RenderJoinEmail builds the HTML and text bodies for a submission.
func RenderJoinEmail(s models.Submission) (html, text string, err error) {
	ctx := map[string]interface{}{
		"emailAddress":           s.EmailAddress,
		"name":                   s.Name,
		"featuresMatterMost":     s.FeaturesMatterMost,
		"currentPlacementSystem": s.CurrentPlacementSystem,
		"mainChallenges":         s.MainChallenges,
	}

	html, err = joinHTMLTemplate.Exec(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	text, err = joinTextTemplate.Exec(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return html, text, nil
}

// JoinSubject is the notification subject line for a submission.
func JoinSubject(prefix string, s models.Submission) string {
	return fmt.Sprintf("%s: %s", prefix, s.DisplayName())
}
