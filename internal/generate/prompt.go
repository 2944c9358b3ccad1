// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// writingPromptTmpl is the prompt sent to the generation API to produce a
// full paper from the accumulated research text.
var writingPromptTmpl = template.Must(template.New("writing").Parse(`Based on the research data below, write a comprehensive academic research paper about "{{.Topic}}".

Research Data:
{{.Research}}

Structure the paper with:
1. # Title
2. ## Abstract (150-200 words)
3. ## Introduction
4. ## Literature Review/Background
5. ## Main Analysis (2-3 sections with ### subheadings)
6. ## Conclusion
7. ## References

Use formal academic language and ensure the paper is well-researched and comprehensive.
Format using markdown headers (# ## ###).
Include proper citations and references.
Aim for approximately 2000-2500 words.

Write the complete paper now:`))

// revisionPromptTmpl is the prompt sent to apply a reader's change request
// to an existing paper.
var revisionPromptTmpl = template.Must(template.New("revision").Parse(`You are editing a research paper about "{{.Topic}}". The reader wants the following changes:

CHANGE REQUEST: {{.ChangeRequest}}

CURRENT PAPER CONTENT:
{{.Content}}

Apply the requested changes. Keep the same academic structure and markdown
formatting, but incorporate the reader's specific requests. Return the
complete modified paper content.

Modified paper:`))

// renderWritingPrompt executes the writing template for a topic and its
// research summary.
func renderWritingPrompt(topic, research string) (string, error) {
	var buf bytes.Buffer
	err := writingPromptTmpl.Execute(&buf, struct{ Topic, Research string }{topic, research})
	return buf.String(), err
}

// renderRevisionPrompt executes the revision template.
func renderRevisionPrompt(topic, content, changeRequest string) (string, error) {
	var buf bytes.Buffer
	err := revisionPromptTmpl.Execute(&buf, struct{ Topic, Content, ChangeRequest string }{topic, content, changeRequest})
	return buf.String(), err
}
