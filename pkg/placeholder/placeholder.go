package placeholder

import (
	"fmt"
	"strings"
)

// Article is one newsletter article exposed to prompt templates
type Article struct {
	Headline string `json:"headline"`
	Content  string `json:"content"`
	Rank     int    `json:"rank"`
}

// App is one AI-tool directory entry exposed to prompt templates
type App struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
}

// Poll is the issue's poll exposed to prompt templates
type Poll struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Ad is one selected advertisement exposed to prompt templates
type Ad struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Data is the ephemeral, timing-scoped read model assembled per generation pass.
// Articles, apps, poll and ads are only populated for the after_articles phase;
// every field is optional from the injector's point of view.
type Data struct {
	IssueDate       string    `json:"issue_date"`
	PublicationName string    `json:"publication_name"`
	SubscriberName  string    `json:"subscriber_name"` // mail-merge token, passed through untouched
	Articles        []Article `json:"articles,omitempty"`
	Apps            []App     `json:"apps,omitempty"`
	Poll            *Poll     `json:"poll,omitempty"`
	Ads             []Ad      `json:"ads,omitempty"`
}

// Keys flattens the data into the token lookup map. Indexed tokens are 1-based
// (article_1_headline, ai_app_2_tagline, ad_1_title).
func (d *Data) Keys() map[string]string {
	keys := map[string]string{
		"issue_date":       d.IssueDate,
		"publication_name": d.PublicationName,
		"subscriber_name":  d.SubscriberName,
	}

	for i, a := range d.Articles {
		keys[fmt.Sprintf("article_%d_headline", i+1)] = a.Headline
		keys[fmt.Sprintf("article_%d_content", i+1)] = a.Content
	}

	for i, app := range d.Apps {
		keys[fmt.Sprintf("ai_app_%d_name", i+1)] = app.Name
		keys[fmt.Sprintf("ai_app_%d_tagline", i+1)] = app.Tagline
		keys[fmt.Sprintf("ai_app_%d_description", i+1)] = app.Description
	}

	if d.Poll != nil {
		keys["poll_question"] = d.Poll.Question
		keys["poll_options"] = strings.Join(d.Poll.Options, ", ")
	}

	for i, ad := range d.Ads {
		keys[fmt.Sprintf("ad_%d_title", i+1)] = ad.Title
		keys[fmt.Sprintf("ad_%d_body", i+1)] = ad.Body
	}

	return keys
}

// Inject substitutes {{token}} markers in text with values from data in a single
// left-to-right pass. Known tokens are replaced verbatim, unknown tokens become
// empty strings, so no well-formed {{...}} marker survives in the output.
// Substituted values are never re-scanned, which keeps the pass idempotent even
// when a value itself contains braces.
func Inject(text string, data *Data) string {
	return InjectKeys(text, data.Keys())
}

// InjectKeys is Inject against a pre-built token map.
func InjectKeys(text string, keys map[string]string) string {
	var b strings.Builder
	b.Grow(len(text))

	for {
		open := strings.Index(text, "{{")
		if open < 0 {
			b.WriteString(text)
			break
		}

		close := strings.Index(text[open+2:], "}}")
		if close < 0 {
			// Unterminated marker is data, not a token
			b.WriteString(text)
			break
		}
		close += open + 2

		b.WriteString(text[:open])

		token := strings.TrimSpace(text[open+2 : close])
		if value, ok := keys[token]; ok {
			b.WriteString(value)
		}
		// Unknown tokens are dropped

		text = text[close+2:]
	}

	return b.String()
}
