package placeholder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectScalars(t *testing.T) {
	data := &Data{
		IssueDate:       "2025-01-01",
		PublicationName: "The Dispatch",
		SubscriberName:  "{$name}",
	}

	out := Inject("Hi {{subscriber_name}}, today is {{issue_date}} and {{unknown_token}}", data)

	assert.Equal(t, "Hi {$name}, today is 2025-01-01 and ", out)
	assert.NotContains(t, out, "{{")
	assert.NotContains(t, out, "}}")
}

func TestInjectIndexedArticles(t *testing.T) {
	data := &Data{
		Articles: []Article{
			{Headline: "A", Content: "Ca", Rank: 1},
			{Headline: "B", Content: "Cb", Rank: 2},
		},
	}

	out := Inject("{{article_1_headline}} / {{article_2_headline}}", data)
	assert.Equal(t, "A / B", out)

	out = Inject("{{article_1_content}}|{{article_2_content}}|{{article_3_content}}", data)
	assert.Equal(t, "Ca|Cb|", out)
}

func TestInjectAppsPollAds(t *testing.T) {
	data := &Data{
		Apps: []App{
			{Name: "Sketcher", Tagline: "draw faster", Description: "an app"},
			{Name: "Notely", Tagline: "notes", Description: "another app"},
		},
		Poll: &Poll{
			Question: "Favorite color?",
			Options:  []string{"red", "blue", "green"},
		},
		Ads: []Ad{
			{Title: "Buy now", Body: "50% off"},
		},
	}

	out := Inject("{{ai_app_1_name}} ({{ai_app_1_tagline}}), {{ai_app_2_name}}", data)
	assert.Equal(t, "Sketcher (draw faster), Notely", out)

	out = Inject("{{poll_question}} [{{poll_options}}]", data)
	assert.Equal(t, "Favorite color? [red, blue, green]", out)

	out = Inject("{{ad_1_title}}: {{ad_1_body}} {{ad_2_title}}", data)
	assert.Equal(t, "Buy now: 50% off ", out)
}

func TestInjectUnknownTokensStripped(t *testing.T) {
	out := Inject("before {{nope}} middle {{ also_nope }} after", &Data{})
	assert.Equal(t, "before  middle  after", out)
}

func TestInjectNoTokens(t *testing.T) {
	text := "plain text without markers"
	assert.Equal(t, text, Inject(text, &Data{}))
}

func TestInjectUnterminatedMarkerIsData(t *testing.T) {
	out := Inject("broken {{issue_date", &Data{IssueDate: "2025-01-01"})
	assert.Equal(t, "broken {{issue_date", out)
}

func TestInjectIdempotent(t *testing.T) {
	// A substituted value containing braces must not be re-expanded
	data := &Data{SubscriberName: "{{issue_date}}", IssueDate: "2025-01-01"}

	out := Inject("{{subscriber_name}}", data)
	assert.Equal(t, "{{issue_date}}", out)

	// Running the injector over already-clean output changes nothing
	clean := Inject("Hello {{publication_name}}", &Data{PublicationName: "The Dispatch"})
	assert.Equal(t, clean, Inject(clean, &Data{PublicationName: "The Dispatch"}))
}

func TestInjectOrderIndependent(t *testing.T) {
	data := &Data{
		IssueDate:       "2025-06-15",
		PublicationName: "Weekly AI",
		Articles:        []Article{{Headline: "H1", Content: "C1", Rank: 1}},
	}

	a := Inject("{{article_1_headline}} on {{issue_date}} in {{publication_name}}", data)
	b := Inject("{{publication_name}} {{issue_date}} {{article_1_headline}}", data)

	assert.Contains(t, a, "H1")
	assert.Contains(t, b, "H1")
	assert.Equal(t, strings.Count(a, "H1"), strings.Count(b, "H1"))
}

func TestKeysOmitMissingSections(t *testing.T) {
	keys := (&Data{IssueDate: "2025-01-01"}).Keys()

	assert.Contains(t, keys, "issue_date")
	assert.NotContains(t, keys, "poll_question")
	assert.NotContains(t, keys, "article_1_headline")
}
